package domain

import (
	"encoding/json"
	"testing"
)

// ============================================
// TESTS de deserialización flexible
// ============================================

// Test: el backend envía el id como número o como string
func TestFlexID_UnmarshalBothForms(t *testing.T) {
	var fromNumber Property
	if err := json.Unmarshal([]byte(`{"id": 42, "title": "Casa"}`), &fromNumber); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fromNumber.ID != "42" {
		t.Errorf("Expected id '42' from number, got %q", fromNumber.ID)
	}

	var fromString Property
	if err := json.Unmarshal([]byte(`{"id": "abc-7", "title": "Casa"}`), &fromString); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fromString.ID != "abc-7" {
		t.Errorf("Expected id 'abc-7' from string, got %q", fromString.ID)
	}
}

// Test: el precio conserva el texto crudo en ambas formas
func TestPriceValue_PreservesRawText(t *testing.T) {
	var fromNumber Property
	if err := json.Unmarshal([]byte(`{"price": 2000000, "currency": "CLP"}`), &fromNumber); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fromNumber.Price != "2000000" {
		t.Errorf("Expected raw '2000000', got %q", fromNumber.Price)
	}

	var fromString Property
	if err := json.Unmarshal([]byte(`{"price": "2.000.000,00", "currency": "CLP"}`), &fromString); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fromString.Price != "2.000.000,00" {
		t.Errorf("Expected raw Chilean text preserved, got %q", fromString.Price)
	}
}

// Test: un precio numérico se re-emite como número JSON
func TestPriceValue_MarshalRoundTrip(t *testing.T) {
	numeric := PriceValue("2000000")
	out, err := json.Marshal(numeric)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(out) != "2000000" {
		t.Errorf("Expected JSON number, got %s", out)
	}

	textual := PriceValue("2.000.000,00")
	out, err = json.Marshal(textual)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(out) != `"2.000.000,00"` {
		t.Errorf("Expected JSON string, got %s", out)
	}
}

// ============================================
// TESTS de la etiqueta de ubicación
// ============================================

// Test: el campo plano "location" tiene prioridad; si falta se
// construye como "región, comuna"
func TestLocation_CanonicalLabel(t *testing.T) {
	flat := Property{LocationLabel: "Zona Oriente", Region: "Metropolitana", Commune: "Las Condes"}
	if flat.Location() != "Zona Oriente" {
		t.Errorf("Expected flat label to win, got %q", flat.Location())
	}

	built := Property{Region: "Metropolitana", Commune: "Las Condes"}
	if built.Location() != "Metropolitana, Las Condes" {
		t.Errorf("Expected built label, got %q", built.Location())
	}

	regionOnly := Property{Region: "Valparaíso"}
	if regionOnly.Location() != "Valparaíso" {
		t.Errorf("Expected region only, got %q", regionOnly.Location())
	}

	empty := Property{}
	if empty.Location() != "" {
		t.Errorf("Expected empty label, got %q", empty.Location())
	}
}

// ============================================
// TESTS de la galería
// ============================================

// Test: la portada es la marcada con is_cover, o la primera
func TestCoverImage(t *testing.T) {
	withCover := Property{Images: []PropertyImage{
		{URL: "a.jpg"},
		{URL: "b.jpg", IsCover: true},
	}}
	if cover := withCover.CoverImage(); cover == nil || cover.URL != "b.jpg" {
		t.Errorf("Expected is_cover image, got %+v", cover)
	}

	firstWins := Property{Images: []PropertyImage{
		{URL: "a.jpg"},
		{URL: "b.jpg"},
	}}
	if cover := firstWins.CoverImage(); cover == nil || cover.URL != "a.jpg" {
		t.Errorf("Expected first image as cover, got %+v", cover)
	}

	none := Property{}
	if cover := none.CoverImage(); cover != nil {
		t.Errorf("Expected nil cover without images, got %+v", cover)
	}
	if none.HasImages() {
		t.Error("Expected HasImages false without images")
	}
}
