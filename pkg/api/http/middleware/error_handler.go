package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/lib/pq"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/apperrors"
)

// Handler es un handler HTTP que puede fallar. El error devuelto lo
// clasifica ErrorHandler y se traduce a la envoltura JSON de error.
type Handler func(w http.ResponseWriter, r *http.Request) error

// ErrorResponse es la envoltura uniforme de error de la API.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// ErrorHandler envuelve un Handler y convierte el error devuelto en la
// respuesta HTTP correspondiente. La clasificación es una cadena
// ordenada de comprobaciones donde gana la primera coincidencia; el
// orden y la lista de palabras clave son superficie de compatibilidad
// con los clientes existentes.
func ErrorHandler(logger *zap.Logger, fn Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		WriteError(w, logger, err)
	}
}

// WriteError clasifica err y escribe la envoltura JSON de error.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	message := err.Error()
	production := viper.GetString("server.env") == "production"

	// 1. Violación de unicidad en la capa de almacenamiento (409).
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Success: false,
			Type:    "duplicate_error",
			Message: apperrors.MsgEmailYaRegistrado,
		})
		return
	}
	if strings.Contains(message, "duplicate key value violates unique constraint") {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Success: false,
			Type:    "duplicate_error",
			Message: apperrors.MsgEmailYaRegistrado,
		})
		return
	}

	// 2. Errores de validación (400). Nota: "email" también casa con
	// mensajes ajenos a validación; la regla va antes que la de 404 a
	// propósito.
	if containsAny(message, "obligatorios", "inválido", "email", "requerido") {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Success: false,
			Type:    "validation_error",
			Message: message,
		})
		return
	}

	// 3. Recurso inexistente (404).
	if strings.Contains(message, "no encontrado") {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Success: false,
			Type:    "not_found_error",
			Message: message,
		})
		return
	}

	// 4. Error con estado de servidor explícito (>= 500).
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Status >= 500 {
		logger.Error("Error del servidor", zap.Error(err))
		resp := ErrorResponse{
			Success: false,
			Type:    "server_error",
			Message: message,
		}
		if resp.Message == "" {
			resp.Message = apperrors.MsgErrorInterno
		}
		if !production {
			resp.Stack = string(debug.Stack())
		}
		writeJSON(w, appErr.Status, resp)
		return
	}

	// 5. Resto: error interno genérico. Fuera de producción se conserva
	// el mensaje original para facilitar el diagnóstico.
	logger.Error("Error del servidor", zap.Error(err))
	resp := ErrorResponse{
		Success: false,
		Type:    "server_error",
		Message: apperrors.MsgErrorInterno,
	}
	if !production && message != "" {
		resp.Message = message
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
