package services

import (
	"strconv"

	"github.com/jromanati/vivienda-chile-sub000/domain"
)

// Ellipsis es la etiqueta que colapsa rangos largos de páginas
const Ellipsis = "..."

// Page es una ventana de paginación lista para renderizar
type Page struct {
	Items      []domain.Property
	Number     int
	Size       int
	TotalItems int
	TotalPages int
	Labels     []string
}

// Paginate deriva la ventana de página para una lista ya filtrada.
// Una página fuera de rango se ajusta silenciosamente en vez de
// fallar: números de página viejos que referencian una lista ahora
// más corta nunca deben romper el render.
func Paginate(items []domain.Property, pageSize, requestedPage int) Page {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	safePage := requestedPage
	if safePage < 1 {
		safePage = 1
	}
	if safePage > totalPages {
		safePage = totalPages
	}

	start := (safePage - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Items:      items[start:end],
		Number:     safePage,
		Size:       pageSize,
		TotalItems: len(items),
		TotalPages: totalPages,
		Labels:     PageLabels(totalPages, safePage),
	}
}

// PageLabels genera las etiquetas del control de paginación. Hasta 7
// páginas se muestran todas; con más, se emite la primera, una
// ventana de ±2 alrededor de la actual y la última, colapsando los
// huecos con "..." para que el control no crezca sin límite.
func PageLabels(totalPages, current int) []string {
	if totalPages <= 7 {
		labels := make([]string, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			labels = append(labels, strconv.Itoa(i))
		}
		return labels
	}

	labels := []string{strconv.Itoa(1)}

	left := current - 2
	right := current + 2
	if left < 2 {
		left = 2
	}
	if right > totalPages-1 {
		right = totalPages - 1
	}

	if left > 2 {
		labels = append(labels, Ellipsis)
	}
	for i := left; i <= right; i++ {
		labels = append(labels, strconv.Itoa(i))
	}
	if right < totalPages-1 {
		labels = append(labels, Ellipsis)
	}

	return append(labels, strconv.Itoa(totalPages))
}
