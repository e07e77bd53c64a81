package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/daniel1002-jpg/medication-management-api/pkg/api/http/handlers"
	"github.com/daniel1002-jpg/medication-management-api/pkg/application/usecases"
	"github.com/daniel1002-jpg/medication-management-api/pkg/infrastructure/persistence/memory"
)

func newTestServer() (*mux.Router, *memory.PatientRepository) {
	repo := memory.NewPatientRepository()
	logger := zap.NewNop()

	handler := handlers.NewPatientHandler(
		usecases.NewCreatePatient(repo),
		usecases.NewGetAllPatients(repo),
		usecases.NewGetPatientByID(repo),
		usecases.NewUpdatePatient(repo),
		usecases.NewDeletePatient(repo),
		logger,
	)

	router := mux.NewRouter()
	apiRouter := router.PathPrefix("/api").Subrouter()
	handler.RegisterRoutes(apiRouter)
	return router, repo
}

func doRequest(t *testing.T, router *mux.Router, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func validPatientBody() map[string]interface{} {
	return map[string]interface{}{
		"nombre":           "Integration Test Patient",
		"email":            "integration@test.com",
		"numero_telefono":  "123456789",
		"domicilio":        "Integration Street 123",
		"fecha_nacimiento": "1990-01-01",
		"obra_social":      "OSDE",
	}
}

func TestCreatePatientEndpoint(t *testing.T) {
	router, repo := newTestServer()

	rec, body := doRequest(t, router, http.MethodPost, "/api/patients", validPatientBody())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Paciente creado correctamente", body["message"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "integration@test.com", data["email"])
	assert.Equal(t, "Integration Test Patient", data["nombre"])
	assert.Equal(t, "123456789", data["numero_telefono"])
	assert.NotEmpty(t, data["id"])
	assert.NotEmpty(t, data["fecha_alta"])
	assert.Equal(t, 1, repo.Count())
}

func TestCreatePatientSinNombre(t *testing.T) {
	router, repo := newTestServer()

	rec, body := doRequest(t, router, http.MethodPost, "/api/patients", map[string]interface{}{
		"email": "only@email.com",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"success": false,
		"message": "El nombre y el email son obligatorios",
		"type":    "validation_error",
	}, body)
	assert.Equal(t, 0, repo.Count())
}

func TestCreatePatientEmailDuplicado(t *testing.T) {
	router, repo := newTestServer()

	rec, _ := doRequest(t, router, http.MethodPost, "/api/patients", validPatientBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	duplicado := validPatientBody()
	duplicado["nombre"] = "Another Name"
	rec, body := doRequest(t, router, http.MethodPost, "/api/patients", duplicado)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"success": false,
		"message": "El email ya está registrado",
		"type":    "duplicate_error",
	}, body)
	assert.Equal(t, 1, repo.Count())
}

func TestCreatePatientNormalizaEmail(t *testing.T) {
	router, _ := newTestServer()

	payload := validPatientBody()
	payload["email"] = "  Integration@TEST.com "
	rec, body := doRequest(t, router, http.MethodPost, "/api/patients", payload)

	require.Equal(t, http.StatusCreated, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "integration@test.com", data["email"])
}

func TestGetAllPatientsVacio(t *testing.T) {
	router, _ := newTestServer()

	rec, body := doRequest(t, router, http.MethodGet, "/api/patients", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, data)
}

func TestGetPatientByIDConIDMalFormado(t *testing.T) {
	router, _ := newTestServer()

	rec, body := doRequest(t, router, http.MethodGet, "/api/patients/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "validation_error", body["type"])
	assert.Contains(t, body["message"], "inválido")
	assert.Equal(t, "ID de paciente inválido: not-a-uuid", body["message"])
}

func TestGetPatientByIDInexistente(t *testing.T) {
	router, _ := newTestServer()

	rec, body := doRequest(t, router, http.MethodGet, "/api/patients/9f0c2e4a-1b2c-4d5e-8f90-123456789abc", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"success": false,
		"message": "Paciente no encontrado",
		"type":    "not_found_error",
	}, body)
}

// Flujo completo: alta, listado con una sola entrada y lectura por id
// devolviendo la misma entidad.
func TestFlujoCrearListarObtener(t *testing.T) {
	router, _ := newTestServer()

	rec, created := doRequest(t, router, http.MethodPost, "/api/patients", validPatientBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	createdData := created["data"].(map[string]interface{})
	id := createdData["id"].(string)

	rec, list := doRequest(t, router, http.MethodGet, "/api/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := list["data"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, id, entry["id"])
	assert.Equal(t, createdData["email"], entry["email"])
	assert.Equal(t, createdData["nombre"], entry["nombre"])

	rec, got := doRequest(t, router, http.MethodGet, "/api/patients/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	gotData := got["data"].(map[string]interface{})
	assert.Equal(t, createdData, gotData)
}

func TestUpdatePatientEndpoint(t *testing.T) {
	router, _ := newTestServer()

	rec, created := doRequest(t, router, http.MethodPost, "/api/patients", validPatientBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	id := created["data"].(map[string]interface{})["id"].(string)

	rec, body := doRequest(t, router, http.MethodPut, "/api/patients/"+id, map[string]interface{}{
		"nombre": "Integration Test Patient",
		"email":  "nuevo@test.com",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Paciente actualizado correctamente", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "nuevo@test.com", data["email"])
	// Los campos no enviados se conservan.
	assert.Equal(t, "123456789", data["numero_telefono"])
	assert.Equal(t, "OSDE", data["obra_social"])
}

func TestUpdatePatientConIDMalFormado(t *testing.T) {
	router, _ := newTestServer()

	rec, body := doRequest(t, router, http.MethodPut, "/api/patients/123", validPatientBody())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", body["type"])
}

func TestUpdatePatientInexistente(t *testing.T) {
	router, _ := newTestServer()

	rec, body := doRequest(t, router, http.MethodPut, "/api/patients/9f0c2e4a-1b2c-4d5e-8f90-123456789abc", validPatientBody())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found_error", body["type"])
}

func TestDeletePatientEndpoint(t *testing.T) {
	router, repo := newTestServer()

	rec, created := doRequest(t, router, http.MethodPost, "/api/patients", validPatientBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	id := created["data"].(map[string]interface{})["id"].(string)

	rec, body := doRequest(t, router, http.MethodDelete, "/api/patients/"+id, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Paciente eliminado correctamente", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, id, data["id"])
	assert.Equal(t, 0, repo.Count())

	rec, _ = doRequest(t, router, http.MethodGet, "/api/patients/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePatientConIDMalFormado(t *testing.T) {
	router, _ := newTestServer()

	rec, body := doRequest(t, router, http.MethodDelete, "/api/patients/abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", body["type"])
	assert.Equal(t, fmt.Sprintf("ID de paciente inválido: %s", "abc"), body["message"])
}
