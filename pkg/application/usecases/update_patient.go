package usecases

import (
	"context"
	"strings"

	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/apperrors"
	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/entities"
	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/repositories"
)

// UpdatePatient reemplaza los datos de un paciente existente fusionando
// los atributos almacenados con los recibidos.
type UpdatePatient struct {
	patientRepo repositories.PatientRepository
}

func NewUpdatePatient(patientRepo repositories.PatientRepository) *UpdatePatient {
	return &UpdatePatient{patientRepo: patientRepo}
}

// Execute exige id y ambos campos obligatorios en los datos entrantes,
// comprueba la existencia del paciente antes de mutar nada, fusiona
// atributos (gana el valor entrante; para nombre y email un valor
// entrante vacío cae al valor almacenado) y revalida construyendo una
// entidad nueva antes de persistir.
func (uc *UpdatePatient) Execute(ctx context.Context, id string, input PatientInput) (*entities.Patient, error) {
	if id == "" {
		return nil, apperrors.NewValidation(apperrors.MsgIDPacienteRequerido)
	}

	if strings.TrimSpace(input.Nombre) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, apperrors.NewValidation(apperrors.MsgNombreEmailObligatorios)
	}

	existing, err := uc.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFound(apperrors.MsgPacienteNoEncontrado)
	}

	attrs := existing.Attributes()
	if strings.TrimSpace(input.Nombre) != "" {
		attrs.Nombre = input.Nombre
	}
	if strings.TrimSpace(input.Email) != "" {
		attrs.Email = input.Email
	}
	if input.NumeroTelefono != nil {
		attrs.NumeroTelefono = input.NumeroTelefono
	}
	if input.Domicilio != nil {
		attrs.Domicilio = input.Domicilio
	}
	if input.FechaNacimiento != nil {
		attrs.FechaNacimiento = input.FechaNacimiento
	}
	if input.FechaAlta != nil {
		attrs.FechaAlta = input.FechaAlta
	}
	if input.ObraSocial != nil {
		attrs.ObraSocial = input.ObraSocial
	}

	updated, err := entities.NewPatient(attrs)
	if err != nil {
		return nil, err
	}

	return uc.patientRepo.Update(ctx, id, updated)
}
