package usecases

import (
	"time"

	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/entities"
)

// PatientInput es el cuerpo JSON crudo de una petición de alta o
// actualización. Los campos opcionales usan punteros: nil significa
// que el cliente no envió el campo. Cualquier id enviado por el
// cliente al crear se descarta antes de validar.
type PatientInput struct {
	ID              string          `json:"id,omitempty"`
	Nombre          string          `json:"nombre"`
	Email           string          `json:"email"`
	NumeroTelefono  *string         `json:"numero_telefono,omitempty"`
	Domicilio       *string         `json:"domicilio,omitempty"`
	FechaNacimiento *entities.Fecha `json:"fecha_nacimiento,omitempty"`
	FechaAlta       *time.Time      `json:"fecha_alta,omitempty"`
	ObraSocial      *string         `json:"obra_social,omitempty"`
}
