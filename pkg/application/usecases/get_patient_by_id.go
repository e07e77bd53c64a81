package usecases

import (
	"context"

	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/apperrors"
	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/entities"
	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/repositories"
)

// GetPatientByID busca un paciente por su identificador.
type GetPatientByID struct {
	patientRepo repositories.PatientRepository
}

func NewGetPatientByID(patientRepo repositories.PatientRepository) *GetPatientByID {
	return &GetPatientByID{patientRepo: patientRepo}
}

func (uc *GetPatientByID) Execute(ctx context.Context, id string) (*entities.Patient, error) {
	if id == "" {
		return nil, apperrors.NewValidation(apperrors.MsgIDPacienteRequerido)
	}

	patient, err := uc.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperrors.NewNotFound(apperrors.MsgPacienteNoEncontrado)
	}

	return patient, nil
}
