package dto

// ContactRequest es el body de POST /api/contact
type ContactRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	Phone      string `json:"phone,omitempty"`
	PropertyID string `json:"propertyId,omitempty"`
	ServiceID  string `json:"serviceId,omitempty"`
	PageURL    string `json:"pageUrl,omitempty"`
	Title      string `json:"title,omitempty"`
}

// ContactResponse es la respuesta del formulario de contacto.
// Message siempre es un texto legible para el usuario final,
// nunca el error crudo de transporte.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
