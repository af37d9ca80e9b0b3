package dto

import "fmt"

// Claves de ordenamiento aceptadas por el catálogo
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortAreaLarge = "area-large"
	SortAreaSmall = "area-small"
)

// CatalogQuery representa los criterios de filtrado del catálogo.
// Es un objeto efímero del lado del cliente: nunca se persiste.
// Un criterio vacío (o el centinela "all") equivale a "sin filtro".
type CatalogQuery struct {
	Search       string  `json:"search" form:"search"`
	Type         string  `json:"type" form:"type"`
	Operation    string  `json:"operation" form:"operation"`
	MinPrice     float64 `json:"min_price" form:"min_price"`
	MaxPrice     float64 `json:"max_price" form:"max_price"`
	MinBedrooms  int     `json:"min_bedrooms" form:"min_bedrooms"`
	MinBathrooms int     `json:"min_bathrooms" form:"min_bathrooms"`
	Location     string  `json:"location" form:"location"`
	Sort         string  `json:"sort" form:"sort"`
	Page         int     `json:"page" form:"page"`
	PageSize     int     `json:"page_size" form:"page_size"`
}

// ApplyDefaults aplica valores por defecto a los parámetros de búsqueda
func (q *CatalogQuery) ApplyDefaults() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 12
	}
	if q.Sort == "" {
		q.Sort = SortNewest
	}
}

// Validate valida los parámetros de búsqueda
func (q *CatalogQuery) Validate() error {
	if q.PageSize > 100 {
		return fmt.Errorf("page_size must be <= 100")
	}
	if q.MinPrice < 0 {
		return fmt.Errorf("min_price cannot be negative")
	}
	if q.MaxPrice < 0 {
		return fmt.Errorf("max_price cannot be negative")
	}
	if q.MinPrice > 0 && q.MaxPrice > 0 && q.MinPrice > q.MaxPrice {
		return fmt.Errorf("min_price cannot be greater than max_price")
	}
	if q.MinBedrooms < 0 {
		return fmt.Errorf("min_bedrooms cannot be negative")
	}
	if q.MinBathrooms < 0 {
		return fmt.Errorf("min_bathrooms cannot be negative")
	}
	switch q.Sort {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh, SortAreaLarge, SortAreaSmall:
		return nil
	default:
		return fmt.Errorf("invalid sort key: %s", q.Sort)
	}
}
