package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jromanati/vivienda-chile-sub000/domain"
	"github.com/jromanati/vivienda-chile-sub000/middleware"
)

// ============================================
// MOCKS del panel de administración
// ============================================

type mockAdminInvalidator struct {
	triggers    int
	nowTriggers int
}

func (m *mockAdminInvalidator) Trigger()    { m.triggers++ }
func (m *mockAdminInvalidator) TriggerNow() { m.nowTriggers++ }

type mockLeadRepo struct {
	leads []domain.ContactLead
}

func (m *mockLeadRepo) Create(lead *domain.ContactLead) error {
	m.leads = append(m.leads, *lead)
	return nil
}

func (m *mockLeadRepo) List(limit, offset int) ([]domain.ContactLead, error) {
	return m.leads, nil
}

const testAdminToken = "token-de-prueba"

func newAdminRouter(client *mockCatalogClient, invalidator *mockAdminInvalidator, adminToken string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewAdminController(client, invalidator, &mockLeadRepo{})

	router := gin.New()
	admin := router.Group("/api/admin")
	admin.Use(middleware.AdminAuth(adminToken))
	{
		admin.POST("/properties", ctrl.CreateProperty)
		admin.PUT("/properties/:id", ctrl.UpdateProperty)
		admin.DELETE("/properties/:id", ctrl.DeleteProperty)
		admin.GET("/leads", ctrl.ListLeads)
	}
	return router
}

// ============================================
// TESTS del guard de autenticación
// ============================================

// Test: sin credenciales, todas las rutas de administración
// responden 401 y la mutación nunca llega al backend
func TestAdminRoutes_RejectWithoutCredentials(t *testing.T) {
	invalidator := &mockAdminInvalidator{}
	router := newAdminRouter(&mockCatalogClient{}, invalidator, testAdminToken)

	requests := []struct {
		method string
		url    string
	}{
		{http.MethodPost, "/api/admin/properties"},
		{http.MethodPut, "/api/admin/properties/1"},
		{http.MethodDelete, "/api/admin/properties/1"},
		{http.MethodGet, "/api/admin/leads"},
	}

	for _, r := range requests {
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(r.method, r.url, strings.NewReader(`{}`))
		router.ServeHTTP(recorder, request)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 for %s %s without credentials, got %d", r.method, r.url, recorder.Code)
		}
	}
	if invalidator.nowTriggers != 0 {
		t.Errorf("Expected no refresh for rejected requests, got %d", invalidator.nowTriggers)
	}
}

// Test: un token incorrecto o mal formateado también es 401
func TestAdminRoutes_RejectBadToken(t *testing.T) {
	router := newAdminRouter(&mockCatalogClient{}, &mockAdminInvalidator{}, testAdminToken)

	headers := []string{
		"Bearer token-equivocado",
		"Basic " + testAdminToken,
		testAdminToken,
	}

	for _, header := range headers {
		recorder := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/api/admin/leads", nil)
		request.Header.Set("Authorization", header)
		router.ServeHTTP(recorder, request)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 for header %q, got %d", header, recorder.Code)
		}
	}
}

// Test: sin token configurado el panel queda cerrado, nunca abierto
func TestAdminRoutes_RejectWhenUnconfigured(t *testing.T) {
	router := newAdminRouter(&mockCatalogClient{}, &mockAdminInvalidator{}, "")

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/api/admin/leads", nil)
	request.Header.Set("Authorization", "Bearer cualquier-cosa")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with unconfigured admin token, got %d", recorder.Code)
	}
}

// Test: con el token correcto la mutación pasa y fuerza un refresco
// inmediato del catálogo (sin ventana de silencio)
func TestAdminRoutes_AcceptValidToken(t *testing.T) {
	invalidator := &mockAdminInvalidator{}
	router := newAdminRouter(&mockCatalogClient{}, invalidator, testAdminToken)

	recorder := httptest.NewRecorder()
	body := strings.NewReader(`{"title": "Casa nueva", "published": false}`)
	request, _ := http.NewRequest(http.MethodPost, "/api/admin/properties", body)
	request.Header.Set("Authorization", "Bearer "+testAdminToken)
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected 201 with valid token, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if invalidator.nowTriggers != 1 {
		t.Errorf("Expected 1 immediate refresh after mutation, got %d", invalidator.nowTriggers)
	}
}
