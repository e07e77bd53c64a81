package usecases

import (
	"context"

	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/apperrors"
	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/entities"
	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/repositories"
)

// DeletePatient elimina un paciente por id.
type DeletePatient struct {
	patientRepo repositories.PatientRepository
}

func NewDeletePatient(patientRepo repositories.PatientRepository) *DeletePatient {
	return &DeletePatient{patientRepo: patientRepo}
}

// Execute comprueba la existencia con una lectura antes de borrar, de
// modo que un id inexistente falla sin efectos secundarios. Devuelve el
// último estado conocido de la fila eliminada.
func (uc *DeletePatient) Execute(ctx context.Context, id string) (*entities.Patient, error) {
	if id == "" {
		return nil, apperrors.NewValidation(apperrors.MsgIDPacienteRequerido)
	}

	existing, err := uc.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFound(apperrors.MsgPacienteNoEncontrado)
	}

	return uc.patientRepo.DeleteByID(ctx, id)
}
