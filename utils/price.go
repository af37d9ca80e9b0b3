package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// "2000000" (entero plano, como lo emite un número JSON)
	integerPattern = regexp.MustCompile(`^-?\d+$`)
	// "2000000.00" (punto decimal, sin comas)
	dotDecimalPattern = regexp.MustCompile(`^-?\d+\.\d{1,6}$`)
)

// NormalizePrice convierte el precio crudo que envía el backend a un
// valor numérico. Retorna también la cantidad de decimales del texto
// de entrada (tope 2) para que el render conserve el formato original.
//
// Reglas, en orden:
//  1. Entero plano -> se parsea directo.
//  2. "dígitos.1-6dígitos" sin coma -> el punto es separador decimal.
//  3. Cualquier otro caso asume formato chileno: "." de miles y "," decimal.
//  4. Solo para CLP: si el valor es entero, divisible por 100, >= 100.000.000
//     y el texto original no traía separadores, se asume que venía en
//     centavos y se divide por 100. El backend ha emitido ambas unidades
//     de forma inconsistente; esta regla está pendiente de confirmación
//     contra datos reales, por eso vive aislada en esta única función.
func NormalizePrice(raw string, currency string) (float64, int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, fmt.Errorf("empty price")
	}

	hadSeparators := strings.ContainsAny(raw, ".,")

	var value float64
	var decimals int
	switch {
	case integerPattern.MatchString(raw):
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid price %q: %w", raw, err)
		}
		value = parsed

	case dotDecimalPattern.MatchString(raw):
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid price %q: %w", raw, err)
		}
		value = parsed
		decimals = len(raw) - strings.Index(raw, ".") - 1

	default:
		// Formato chileno: quitar puntos de miles, coma -> punto
		normalized := strings.ReplaceAll(raw, ".", "")
		if idx := strings.Index(normalized, ","); idx >= 0 {
			decimals = len(normalized) - idx - 1
		}
		normalized = strings.Replace(normalized, ",", ".", 1)
		parsed, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid price %q: %w", raw, err)
		}
		value = parsed
	}

	if decimals > 2 {
		decimals = 2
	}

	// Heurística de centavos para CLP (ver comentario de arriba)
	if currency == "CLP" && !hadSeparators &&
		value == math.Trunc(value) &&
		math.Mod(value, 100) == 0 &&
		value >= 100_000_000 {
		value = value / 100
		decimals = 0
	}

	return value, decimals, nil
}

// FormatPrice formatea un valor numérico con separadores chilenos:
// punto de miles y coma decimal. decimals controla los decimales
// emitidos (normalmente el valor que retornó NormalizePrice).
func FormatPrice(value float64, decimals int) string {
	text := strconv.FormatFloat(value, 'f', decimals, 64)

	intPart := text
	fracPart := ""
	if idx := strings.Index(text, "."); idx >= 0 {
		intPart = text[:idx]
		fracPart = text[idx+1:]
	}

	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	// Insertar puntos de miles de derecha a izquierda
	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte('.')
		}
		builder.WriteRune(digit)
	}

	result := builder.String()
	if negative {
		result = "-" + result
	}
	if fracPart != "" {
		result += "," + fracPart
	}
	return result
}
