package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/daniel1002-jpg/medication-management-api/pkg/api/http/middleware"
	"github.com/daniel1002-jpg/medication-management-api/pkg/application/usecases"
	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/apperrors"
)

// uuidRegex valida la forma textual canónica de un UUID (grupos
// hexadecimales 8-4-4-4-12 con versión y variante acotadas).
var uuidRegex = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// Response es la envoltura estándar de las respuestas exitosas.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// PatientHandler adapta las peticiones HTTP a los casos de uso de
// pacientes. No maneja errores localmente: los devuelve para que el
// middleware de errores los clasifique.
type PatientHandler struct {
	createPatient  *usecases.CreatePatient
	getAllPatients *usecases.GetAllPatients
	getPatientByID *usecases.GetPatientByID
	updatePatient  *usecases.UpdatePatient
	deletePatient  *usecases.DeletePatient
	logger         *zap.Logger
}

// NewPatientHandler crea el handler con sus casos de uso inyectados.
func NewPatientHandler(
	createPatient *usecases.CreatePatient,
	getAllPatients *usecases.GetAllPatients,
	getPatientByID *usecases.GetPatientByID,
	updatePatient *usecases.UpdatePatient,
	deletePatient *usecases.DeletePatient,
	logger *zap.Logger,
) *PatientHandler {
	return &PatientHandler{
		createPatient:  createPatient,
		getAllPatients: getAllPatients,
		getPatientByID: getPatientByID,
		updatePatient:  updatePatient,
		deletePatient:  deletePatient,
		logger:         logger,
	}
}

// RegisterRoutes registra las rutas de pacientes en el router recibido
// (normalmente el subrouter /api).
func (h *PatientHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/patients", middleware.ErrorHandler(h.logger, h.Create)).Methods("POST")
	router.HandleFunc("/patients", middleware.ErrorHandler(h.logger, h.GetAll)).Methods("GET")
	router.HandleFunc("/patients/{id}", middleware.ErrorHandler(h.logger, h.GetByID)).Methods("GET")
	router.HandleFunc("/patients/{id}", middleware.ErrorHandler(h.logger, h.Update)).Methods("PUT")
	router.HandleFunc("/patients/{id}", middleware.ErrorHandler(h.logger, h.Delete)).Methods("DELETE")
}

// Create maneja POST /api/patients.
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var input usecases.PatientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return apperrors.NewValidation("Cuerpo de la petición inválido")
	}

	patient, err := h.createPatient.Execute(r.Context(), input)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Paciente creado correctamente",
		Data:    patient,
	})
	return nil
}

// GetAll maneja GET /api/patients.
func (h *PatientHandler) GetAll(w http.ResponseWriter, r *http.Request) error {
	patients, err := h.getAllPatients.Execute(r.Context())
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    patients,
	})
	return nil
}

// GetByID maneja GET /api/patients/{id}.
func (h *PatientHandler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, ok := h.patientID(w, r)
	if !ok {
		return nil
	}

	patient, err := h.getPatientByID.Execute(r.Context(), id)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    patient,
	})
	return nil
}

// Update maneja PUT /api/patients/{id}.
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, ok := h.patientID(w, r)
	if !ok {
		return nil
	}

	var input usecases.PatientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return apperrors.NewValidation("Cuerpo de la petición inválido")
	}

	patient, err := h.updatePatient.Execute(r.Context(), id, input)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Paciente actualizado correctamente",
		Data:    patient,
	})
	return nil
}

// Delete maneja DELETE /api/patients/{id}.
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, ok := h.patientID(w, r)
	if !ok {
		return nil
	}

	patient, err := h.deletePatient.Execute(r.Context(), id)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Paciente eliminado correctamente",
		Data:    patient,
	})
	return nil
}

// patientID extrae {id} y valida su forma de UUID antes de invocar el
// caso de uso. Si la forma no es válida responde 400 directamente y
// devuelve ok = false.
func (h *PatientHandler) patientID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if !isValidUUID(id) {
		respondWithJSON(w, http.StatusBadRequest, middleware.ErrorResponse{
			Success: false,
			Type:    "validation_error",
			Message: fmt.Sprintf("ID de paciente inválido: %s", id),
		})
		return "", false
	}
	return id, true
}

func isValidUUID(id string) bool {
	return uuidRegex.MatchString(id)
}

// respondWithJSON envía una respuesta JSON estándar al cliente.
func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
