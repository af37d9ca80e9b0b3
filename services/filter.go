package services

import (
	"sort"
	"strings"

	"github.com/jromanati/vivienda-chile-sub000/domain"
	"github.com/jromanati/vivienda-chile-sub000/dto"
	"github.com/jromanati/vivienda-chile-sub000/utils"
)

// typeAll es el centinela del selector de tipo: equivale a "sin filtro"
const typeAll = "all"

// Apply es el motor de filtrado y ordenamiento del catálogo: función
// pura (lista, criterios, clave de orden) -> subconjunto ordenado.
// Sin estado oculto ni I/O; los mismos inputs producen siempre el
// mismo output. Los criterios ausentes son siempre-verdadero y los
// presentes se combinan con AND.
func Apply(list []domain.Property, criteria dto.CatalogQuery, sortKey string) []domain.Property {
	filtered := make([]domain.Property, 0, len(list))
	for _, property := range list {
		if matches(property, criteria) {
			filtered = append(filtered, property)
		}
	}
	sortProperties(filtered, sortKey)
	return filtered
}

// PublicCatalog aplica el filtro implícito de la vista pública:
// las propiedades no publicadas jamás aparecen, sin importar el
// resto de los criterios.
func PublicCatalog(list []domain.Property, criteria dto.CatalogQuery, sortKey string) []domain.Property {
	published := make([]domain.Property, 0, len(list))
	for _, property := range list {
		if property.Published {
			published = append(published, property)
		}
	}
	return Apply(published, criteria, sortKey)
}

// FeaturedCatalog es la vista del home: publicadas, destacadas y
// con al menos una imagen, de la más nueva a la más antigua
func FeaturedCatalog(list []domain.Property) []domain.Property {
	featured := make([]domain.Property, 0)
	for _, property := range list {
		if property.Published && property.Featured && property.HasImages() {
			featured = append(featured, property)
		}
	}
	sortProperties(featured, dto.SortNewest)
	return featured
}

// matches evalúa el predicado AND de todos los criterios presentes
func matches(p domain.Property, criteria dto.CatalogQuery) bool {
	if criteria.Search != "" {
		needle := strings.ToLower(criteria.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Region), needle) &&
			!strings.Contains(strings.ToLower(p.Commune), needle) {
			return false
		}
	}

	if criteria.Type != "" && criteria.Type != typeAll && p.PropertyType != criteria.Type {
		return false
	}

	if criteria.Operation != "" && p.Operation != criteria.Operation {
		return false
	}

	// Un valor desconocido falla un umbral presente: no se puede
	// afirmar que una propiedad sin dato de dormitorios cumpla
	if criteria.MinBedrooms > 0 {
		if p.Bedrooms == nil || *p.Bedrooms < criteria.MinBedrooms {
			return false
		}
	}
	if criteria.MinBathrooms > 0 {
		if p.Bathrooms == nil || *p.Bathrooms < criteria.MinBathrooms {
			return false
		}
	}

	if criteria.Location != "" && p.Location() != criteria.Location {
		return false
	}

	if criteria.MinPrice > 0 || criteria.MaxPrice > 0 {
		price, ok := normalizedPrice(p)
		if !ok {
			return false
		}
		if criteria.MinPrice > 0 && price < criteria.MinPrice {
			return false
		}
		if criteria.MaxPrice > 0 && price > criteria.MaxPrice {
			return false
		}
	}

	return true
}

// normalizedPrice pasa el precio crudo por el normalizador único
func normalizedPrice(p domain.Property) (float64, bool) {
	value, _, err := utils.NormalizePrice(string(p.Price), p.Currency)
	if err != nil {
		return 0, false
	}
	return value, true
}

// effectiveArea retorna la superficie construida, o el terreno si
// no hay dato de construcción
func effectiveArea(p domain.Property) float64 {
	if p.BuiltArea != nil {
		return *p.BuiltArea
	}
	if p.LandArea != nil {
		return *p.LandArea
	}
	return 0
}

// sortProperties ordena in-place según la clave pedida. Se usa
// ordenamiento estable: los empates conservan el orden de entrada
// para que el resultado sea reproducible.
func sortProperties(list []domain.Property, sortKey string) {
	switch sortKey {
	case dto.SortOldest:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
	case dto.SortPriceLow:
		sort.SliceStable(list, func(i, j int) bool {
			pi, _ := normalizedPrice(list[i])
			pj, _ := normalizedPrice(list[j])
			return pi < pj
		})
	case dto.SortPriceHigh:
		sort.SliceStable(list, func(i, j int) bool {
			pi, _ := normalizedPrice(list[i])
			pj, _ := normalizedPrice(list[j])
			return pi > pj
		})
	case dto.SortAreaLarge:
		sort.SliceStable(list, func(i, j int) bool {
			return effectiveArea(list[i]) > effectiveArea(list[j])
		})
	case dto.SortAreaSmall:
		sort.SliceStable(list, func(i, j int) bool {
			return effectiveArea(list[i]) < effectiveArea(list[j])
		})
	default: // newest
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
	}
}
