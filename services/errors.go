package services

import "fmt"

// Taxonomía de errores del catálogo. Todas las fallas de una llamada
// son terminales: no hay reintentos más allá del único reintento por
// 401 que implementa el catalog client.

// AuthError indica que no se pudo establecer una sesión con el backend
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Reason
}

// HttpError indica una respuesta no-2xx del backend (después del reintento)
type HttpError struct {
	Status int
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// NetworkError indica una falla de transporte
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError indica un body malformado
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode error: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError representa un error de validación de entrada
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
