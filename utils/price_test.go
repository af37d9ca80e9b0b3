package utils

import "testing"

// ============================================
// TESTS de NormalizePrice
// ============================================

// Test: formato chileno con decimales
func TestNormalizePrice_ChileanFormat(t *testing.T) {
	value, decimals, err := NormalizePrice("2.000.000,00", "CLP")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if value != 2000000.0 {
		t.Errorf("Expected 2000000.0, got %f", value)
	}
	if decimals != 2 {
		t.Errorf("Expected 2 decimals, got %d", decimals)
	}
}

// Test: punto decimal sin comas no es formato chileno
func TestNormalizePrice_DotDecimal(t *testing.T) {
	value, decimals, err := NormalizePrice("2000000.00", "CLP")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if value != 2000000.0 {
		t.Errorf("Expected 2000000.0, got %f", value)
	}
	if decimals != 2 {
		t.Errorf("Expected 2 decimals, got %d", decimals)
	}
}

// Test: entero plano sin separadores
func TestNormalizePrice_PlainInteger(t *testing.T) {
	value, decimals, err := NormalizePrice("45000000", "CLP")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if value != 45000000.0 {
		t.Errorf("Expected 45000000.0, got %f", value)
	}
	if decimals != 0 {
		t.Errorf("Expected 0 decimals, got %d", decimals)
	}
}

// Test: heurística de centavos para CLP. Un entero sin separadores,
// divisible por 100 y sobre el umbral se asume en centavos
func TestNormalizePrice_CLPCentsHeuristic(t *testing.T) {
	value, _, err := NormalizePrice("200000000", "CLP")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if value != 2000000.0 {
		t.Errorf("Expected 2000000.0 after cents scaling, got %f", value)
	}
}

// Test: la heurística de centavos no aplica a otras monedas
func TestNormalizePrice_CentsHeuristicOnlyCLP(t *testing.T) {
	value, _, err := NormalizePrice("200000000", "USD")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if value != 200000000.0 {
		t.Errorf("Expected unscaled value for USD, got %f", value)
	}
}

// Test: un texto con separadores nunca pasa por la heurística de
// centavos, aunque supere el umbral
func TestNormalizePrice_SeparatorsSkipCentsHeuristic(t *testing.T) {
	value, _, err := NormalizePrice("200.000.000", "CLP")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if value != 200000000.0 {
		t.Errorf("Expected unscaled value with separator text, got %f", value)
	}
}

// Test: un entero bajo el umbral tampoco se escala
func TestNormalizePrice_BelowThresholdNotScaled(t *testing.T) {
	value, _, err := NormalizePrice("99999900", "CLP")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if value != 99999900.0 {
		t.Errorf("Expected unscaled value below threshold, got %f", value)
	}
}

// Test: los decimales se acotan a 2 para el render
func TestNormalizePrice_DecimalsCappedAtTwo(t *testing.T) {
	_, decimals, err := NormalizePrice("1000.12345", "CLP")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if decimals != 2 {
		t.Errorf("Expected decimals capped at 2, got %d", decimals)
	}
}

// Test: entradas inválidas retornan error
func TestNormalizePrice_Invalid(t *testing.T) {
	invalid := []string{"", "   ", "abc", "1.2.3,4,5x"}
	for _, raw := range invalid {
		if _, _, err := NormalizePrice(raw, "CLP"); err == nil {
			t.Errorf("Expected error for input %q", raw)
		}
	}
}

// ============================================
// TESTS de FormatPrice
// ============================================

// Test: formato de salida con separadores chilenos
func TestFormatPrice(t *testing.T) {
	cases := []struct {
		value    float64
		decimals int
		expected string
	}{
		{2000000, 0, "2.000.000"},
		{2000000, 2, "2.000.000,00"},
		{450000, 0, "450.000"},
		{999, 0, "999"},
		{-1234567, 0, "-1.234.567"},
		{1234.5, 1, "1.234,5"},
	}

	for _, c := range cases {
		if got := FormatPrice(c.value, c.decimals); got != c.expected {
			t.Errorf("FormatPrice(%f, %d) = %q, expected %q", c.value, c.decimals, got, c.expected)
		}
	}
}

// Test: normalizar y formatear es un viaje de ida y vuelta para los
// formatos que emite el backend
func TestNormalizeThenFormat(t *testing.T) {
	value, decimals, err := NormalizePrice("2.000.000,00", "CLP")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := FormatPrice(value, decimals); got != "2.000.000,00" {
		t.Errorf("Expected round trip to 2.000.000,00, got %q", got)
	}
}
