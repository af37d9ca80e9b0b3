package repositories

import (
	"gorm.io/gorm"

	"github.com/jromanati/vivienda-chile-sub000/domain"
)

// LeadRepository define el acceso a datos de leads de contacto
type LeadRepository interface {
	Create(lead *domain.ContactLead) error
	List(limit, offset int) ([]domain.ContactLead, error)
}

// leadRepository implementa LeadRepository con GORM sobre MySQL
type leadRepository struct {
	db *gorm.DB
}

// NewLeadRepository crea una nueva instancia de LeadRepository
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

// Create inserta un nuevo lead
func (r *leadRepository) Create(lead *domain.ContactLead) error {
	return r.db.Create(lead).Error
}

// List retorna los leads más recientes (para el back-office)
func (r *leadRepository) List(limit, offset int) ([]domain.ContactLead, error) {
	var leads []domain.ContactLead
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&leads).Error
	return leads, err
}
