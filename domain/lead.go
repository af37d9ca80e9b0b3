package domain

import "time"

// ContactLead es un lead del formulario de contacto. A diferencia de
// las propiedades (que viven en el backend remoto), los leads se
// persisten localmente antes de notificar por correo.
type ContactLead struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UUID       string    `gorm:"type:char(36);uniqueIndex" json:"id"`
	Name       string    `gorm:"size:120;not null" json:"name"`
	Email      string    `gorm:"size:255;not null" json:"email"`
	Phone      string    `gorm:"size:40" json:"phone,omitempty"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	PropertyID string    `gorm:"size:64;index" json:"propertyId,omitempty"`
	ServiceID  string    `gorm:"size:64" json:"serviceId,omitempty"`
	PageURL    string    `gorm:"size:512" json:"pageUrl,omitempty"`
	Title      string    `gorm:"size:255" json:"title,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName define el nombre de la tabla en MySQL
func (ContactLead) TableName() string {
	return "contact_leads"
}
