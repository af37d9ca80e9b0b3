package services

import (
	"strconv"
	"testing"

	"github.com/jromanati/vivienda-chile-sub000/domain"
)

func makeProperties(n int) []domain.Property {
	list := make([]domain.Property, n)
	for i := range list {
		list[i] = domain.Property{ID: domain.FlexID(strconv.Itoa(i + 1)), Published: true}
	}
	return list
}

// ============================================
// TESTS de Paginate
// ============================================

// Test: 25 elementos con páginas de 10 -> la página 3 trae los
// elementos 21 a 25 y hay 3 páginas en total
func TestPaginate_LastPartialPage(t *testing.T) {
	items := makeProperties(25)

	page := Paginate(items, 10, 3)

	if page.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", page.TotalPages)
	}
	if page.Number != 3 {
		t.Errorf("Expected page number 3, got %d", page.Number)
	}
	if len(page.Items) != 5 {
		t.Fatalf("Expected 5 items on last page, got %d", len(page.Items))
	}
	if page.Items[0].ID != "21" || page.Items[4].ID != "25" {
		t.Errorf("Expected items 21..25, got %s..%s", page.Items[0].ID, page.Items[4].ID)
	}
	if page.TotalItems != 25 {
		t.Errorf("Expected 25 total items, got %d", page.TotalItems)
	}
}

// Test: una página fuera de rango se ajusta en vez de fallar
func TestPaginate_ClampsOutOfRange(t *testing.T) {
	items := makeProperties(25)

	tooHigh := Paginate(items, 10, 99)
	if tooHigh.Number != 3 {
		t.Errorf("Expected page clamped to 3, got %d", tooHigh.Number)
	}
	if len(tooHigh.Items) != 5 {
		t.Errorf("Expected last page items after clamping, got %d", len(tooHigh.Items))
	}

	tooLow := Paginate(items, 10, 0)
	if tooLow.Number != 1 {
		t.Errorf("Expected page clamped to 1, got %d", tooLow.Number)
	}
	if len(tooLow.Items) != 10 {
		t.Errorf("Expected full first page, got %d items", len(tooLow.Items))
	}
}

// Test: lista vacía produce una única página vacía
func TestPaginate_EmptyList(t *testing.T) {
	page := Paginate(nil, 12, 1)

	if page.TotalPages != 1 {
		t.Errorf("Expected 1 total page for empty list, got %d", page.TotalPages)
	}
	if len(page.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(page.Items))
	}
	if len(page.Labels) != 1 || page.Labels[0] != "1" {
		t.Errorf("Expected single label '1', got %v", page.Labels)
	}
}

// ============================================
// TESTS de PageLabels
// ============================================

// Test: hasta 7 páginas se muestran todas sin elipsis
func TestPageLabels_ShortRange(t *testing.T) {
	labels := PageLabels(5, 3)

	expected := []string{"1", "2", "3", "4", "5"}
	if len(labels) != len(expected) {
		t.Fatalf("Expected %d labels, got %v", len(expected), labels)
	}
	for i, label := range expected {
		if labels[i] != label {
			t.Errorf("Expected label %s at index %d, got %s", label, i, labels[i])
		}
	}
}

// Test: con más de 7 páginas se colapsa con elipsis a ambos lados
func TestPageLabels_EllipsisBothSides(t *testing.T) {
	labels := PageLabels(20, 10)

	expected := []string{"1", Ellipsis, "8", "9", "10", "11", "12", Ellipsis, "20"}
	if len(labels) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, labels)
	}
	for i, label := range expected {
		if labels[i] != label {
			t.Errorf("Expected label %s at index %d, got %s", label, i, labels[i])
		}
	}
}

// Test: cerca del inicio solo hay elipsis a la derecha
func TestPageLabels_NearStart(t *testing.T) {
	labels := PageLabels(20, 2)

	expected := []string{"1", "2", "3", "4", Ellipsis, "20"}
	if len(labels) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, labels)
	}
	for i, label := range expected {
		if labels[i] != label {
			t.Errorf("Expected label %s at index %d, got %s", label, i, labels[i])
		}
	}
}

// Test: cerca del final solo hay elipsis a la izquierda
func TestPageLabels_NearEnd(t *testing.T) {
	labels := PageLabels(20, 19)

	expected := []string{"1", Ellipsis, "17", "18", "19", "20"}
	if len(labels) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, labels)
	}
	for i, label := range expected {
		if labels[i] != label {
			t.Errorf("Expected label %s at index %d, got %s", label, i, labels[i])
		}
	}
}
