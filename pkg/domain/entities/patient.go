package entities

import (
	"regexp"
	"strings"
	"time"

	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/apperrors"
)

// emailRegex exige parte local, "@" y un dominio con al menos un punto,
// sin espacios en blanco en ninguna de las partes.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Patient es la representación validada y normalizada de un paciente.
// Las instancias se construyen siempre mediante NewPatient y no se
// mutan: una actualización produce una instancia nueva.
type Patient struct {
	ID              string     `json:"id,omitempty"`
	Nombre          string     `json:"nombre"`
	Email           string     `json:"email"`
	NumeroTelefono  *string    `json:"numero_telefono,omitempty"`
	Domicilio       *string    `json:"domicilio,omitempty"`
	FechaNacimiento *Fecha     `json:"fecha_nacimiento,omitempty"`
	FechaAlta       *time.Time `json:"fecha_alta,omitempty"`
	ObraSocial      *string    `json:"obra_social,omitempty"`
}

// PatientAttributes es el conjunto plano de atributos de un paciente,
// tal como llega de la capa HTTP o de una fila de la base de datos.
// Los campos opcionales usan punteros: nil significa "sin valor".
type PatientAttributes struct {
	ID              string
	Nombre          string
	Email           string
	NumeroTelefono  *string
	Domicilio       *string
	FechaNacimiento *Fecha
	FechaAlta       *time.Time
	ObraSocial      *string
}

// NewPatient normaliza y valida los atributos recibidos y devuelve la
// entidad resultante. El orden de las comprobaciones es contractual:
// primero los campos obligatorios (mensaje conjunto para nombre y
// email), después el formato del email.
func NewPatient(attrs PatientAttributes) (*Patient, error) {
	nombre := strings.TrimSpace(attrs.Nombre)
	email := strings.ToLower(strings.TrimSpace(attrs.Email))

	if nombre == "" || email == "" {
		return nil, apperrors.NewValidation(apperrors.MsgNombreEmailObligatorios)
	}

	if !emailRegex.MatchString(email) {
		return nil, apperrors.NewValidation(apperrors.MsgFormatoEmailInvalido)
	}

	return &Patient{
		ID:              attrs.ID,
		Nombre:          nombre,
		Email:           email,
		NumeroTelefono:  attrs.NumeroTelefono,
		Domicilio:       attrs.Domicilio,
		FechaNacimiento: attrs.FechaNacimiento,
		FechaAlta:       attrs.FechaAlta,
		ObraSocial:      attrs.ObraSocial,
	}, nil
}

// Attributes devuelve los atributos planos de la entidad. Se usa como
// base al fusionar los datos almacenados con una actualización parcial.
func (p *Patient) Attributes() PatientAttributes {
	return PatientAttributes{
		ID:              p.ID,
		Nombre:          p.Nombre,
		Email:           p.Email,
		NumeroTelefono:  p.NumeroTelefono,
		Domicilio:       p.Domicilio,
		FechaNacimiento: p.FechaNacimiento,
		FechaAlta:       p.FechaAlta,
		ObraSocial:      p.ObraSocial,
	}
}
