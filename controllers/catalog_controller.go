package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jromanati/vivienda-chile-sub000/domain"
	"github.com/jromanati/vivienda-chile-sub000/dto"
	"github.com/jromanati/vivienda-chile-sub000/services"
	"github.com/jromanati/vivienda-chile-sub000/utils"
)

// CatalogController maneja los endpoints públicos del catálogo
type CatalogController struct {
	client services.CatalogClient
}

// NewCatalogController crea una nueva instancia del controlador
func NewCatalogController(client services.CatalogClient) *CatalogController {
	return &CatalogController{client: client}
}

// HealthCheck maneja GET /health
func (ctrl *CatalogController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// List maneja GET /api/properties
// Lee la copia local del catálogo (o la puebla en frío), filtra,
// ordena y pagina según los query params.
func (ctrl *CatalogController) List(c *gin.Context) {
	var query dto.CatalogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	query.ApplyDefaults()
	if err := query.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	properties := ctrl.loadCatalog(c)

	filtered := services.PublicCatalog(properties, query, query.Sort)
	page := services.Paginate(filtered, query.PageSize, query.Page)

	c.JSON(http.StatusOK, dto.CatalogResponse{
		Results:      page.Items,
		TotalResults: page.TotalItems,
		Page:         page.Number,
		PageSize:     page.Size,
		TotalPages:   page.TotalPages,
		Pages:        page.Labels,
	})
}

// Featured maneja GET /api/featured: las propiedades destacadas del home
func (ctrl *CatalogController) Featured(c *gin.Context) {
	properties := ctrl.loadCatalog(c)
	featured := services.FeaturedCatalog(properties)

	c.JSON(http.StatusOK, gin.H{"results": featured})
}

// Detail maneja GET /api/properties/:id
func (ctrl *CatalogController) Detail(c *gin.Context) {
	id := c.Param("id")

	property := ctrl.findProperty(c, id)
	if property == nil || !property.Published {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "property_not_found",
			Message: "Property not found",
		})
		return
	}

	// El panel pega a veces el iframe completo del mapa; al público
	// siempre se le entrega la URL embebible limpia
	property.MapSrc = utils.ExtractMapSrc(property.MapSrc)

	c.JSON(http.StatusOK, property)
}

// loadCatalog lee la copia local o la puebla en frío. Las fallas de
// red o autenticación degradan a "sin datos": la vista muestra un
// estado vacío, nunca un crash en el render.
func (ctrl *CatalogController) loadCatalog(c *gin.Context) []domain.Property {
	properties, ok := ctrl.client.CachedProperties()
	if ok {
		return properties
	}

	properties, err := ctrl.client.GetProperties(c.Request.Context())
	if err != nil {
		log.Printf("CatalogController: could not load catalog: %v", err)
		return nil
	}
	return properties
}

// findProperty busca primero en la copia local y recién después
// consulta al backend por la propiedad individual
func (ctrl *CatalogController) findProperty(c *gin.Context, id string) *domain.Property {
	if properties, ok := ctrl.client.CachedProperties(); ok {
		for i := range properties {
			if properties[i].ID.String() == id {
				return &properties[i]
			}
		}
	}

	property, err := ctrl.client.GetProperty(c.Request.Context(), id)
	if err != nil {
		log.Printf("CatalogController: could not fetch property %s: %v", id, err)
		return nil
	}
	return property
}
