package dto

import "github.com/jromanati/vivienda-chile-sub000/domain"

// CatalogResponse representa la respuesta de una consulta al catálogo
type CatalogResponse struct {
	Results      []domain.Property `json:"results"`
	TotalResults int               `json:"total_results"`
	Page         int               `json:"page"`
	PageSize     int               `json:"page_size"`
	TotalPages   int               `json:"total_pages"`
	// Pages son las etiquetas del control de paginación,
	// con "..." donde se colapsan rangos largos
	Pages []string `json:"pages"`
}

// ErrorResponse representa una respuesta de error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse representa una respuesta exitosa genérica
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
