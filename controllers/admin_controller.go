package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jromanati/vivienda-chile-sub000/domain"
	"github.com/jromanati/vivienda-chile-sub000/dto"
	"github.com/jromanati/vivienda-chile-sub000/repositories"
	"github.com/jromanati/vivienda-chile-sub000/services"
)

// AdminController es el proxy del panel de administración: reenvía
// las operaciones CRUD al backend remoto (que es quien asigna
// identidad y muta) y fuerza el refresco de la copia local después
// de cada mutación exitosa.
type AdminController struct {
	client      services.CatalogClient
	invalidator services.AdminInvalidator
	leads       repositories.LeadRepository
}

// NewAdminController crea una nueva instancia del controlador
func NewAdminController(client services.CatalogClient, invalidator services.AdminInvalidator, leads repositories.LeadRepository) *AdminController {
	return &AdminController{
		client:      client,
		invalidator: invalidator,
		leads:       leads,
	}
}

// CreateProperty maneja POST /api/admin/properties
func (ctrl *AdminController) CreateProperty(c *gin.Context) {
	var draft domain.Property
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	created, err := ctrl.client.CreateProperty(c.Request.Context(), draft)
	if err != nil {
		ctrl.writeBackendError(c, err)
		return
	}

	ctrl.invalidator.TriggerNow()
	c.JSON(http.StatusCreated, dto.SuccessResponse{
		Message: "Property created successfully",
		Data:    created,
	})
}

// UpdateProperty maneja PUT /api/admin/properties/:id
func (ctrl *AdminController) UpdateProperty(c *gin.Context) {
	id := c.Param("id")

	var draft domain.Property
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	updated, err := ctrl.client.UpdateProperty(c.Request.Context(), id, draft)
	if err != nil {
		ctrl.writeBackendError(c, err)
		return
	}

	ctrl.invalidator.TriggerNow()
	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Property updated successfully",
		Data:    updated,
	})
}

// DeleteProperty maneja DELETE /api/admin/properties/:id
func (ctrl *AdminController) DeleteProperty(c *gin.Context) {
	id := c.Param("id")

	if err := ctrl.client.DeleteProperty(c.Request.Context(), id); err != nil {
		ctrl.writeBackendError(c, err)
		return
	}

	ctrl.invalidator.TriggerNow()
	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Property deleted successfully",
	})
}

// ListLeads maneja GET /api/admin/leads
func (ctrl *AdminController) ListLeads(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	leads, err := ctrl.leads.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "leads_error",
			Message: "Could not list leads",
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Leads retrieved successfully",
		Data:    leads,
	})
}

// writeBackendError traduce la taxonomía de errores del client a HTTP
func (ctrl *AdminController) writeBackendError(c *gin.Context, err error) {
	var authErr *services.AuthError
	var httpErr *services.HttpError

	switch {
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "auth_error",
			Message: "Could not authenticate against the backend",
		})
	case errors.As(err, &httpErr):
		c.JSON(httpErr.Status, dto.ErrorResponse{
			Error:   "backend_error",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:   "backend_unavailable",
			Message: "The properties backend is not responding",
		})
	}
}
