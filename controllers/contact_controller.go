package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jromanati/vivienda-chile-sub000/dto"
	"github.com/jromanati/vivienda-chile-sub000/services"
)

// ContactController maneja el formulario de contacto
type ContactController struct {
	service services.ContactService
}

// NewContactController crea una nueva instancia del controlador
func NewContactController(service services.ContactService) *ContactController {
	return &ContactController{service: service}
}

// Submit maneja POST /api/contact
// Al usuario final siempre se le responde con un mensaje legible,
// nunca con el texto crudo de un error de transporte.
func (ctrl *ContactController) Submit(c *gin.Context) {
	var request dto.ContactRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, dto.ContactResponse{
			Success: false,
			Message: "Revisa los datos del formulario e inténtalo nuevamente.",
		})
		return
	}

	_, err := ctrl.service.Submit(request)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, dto.ContactResponse{
				Success: false,
				Message: "Completa tu nombre, correo y mensaje para poder contactarte.",
			})
			return
		}

		log.Printf("ContactController: error submitting lead: %v", err)
		c.JSON(http.StatusInternalServerError, dto.ContactResponse{
			Success: false,
			Message: "No pudimos enviar tu mensaje. Inténtalo nuevamente en unos minutos.",
		})
		return
	}

	c.JSON(http.StatusOK, dto.ContactResponse{
		Success: true,
		Message: "¡Gracias por tu mensaje! Te contactaremos a la brevedad.",
	})
}
