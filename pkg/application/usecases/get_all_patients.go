package usecases

import (
	"context"

	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/entities"
	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/repositories"
)

// GetAllPatients devuelve el listado completo, sin filtros ni paginación.
type GetAllPatients struct {
	patientRepo repositories.PatientRepository
}

func NewGetAllPatients(patientRepo repositories.PatientRepository) *GetAllPatients {
	return &GetAllPatients{patientRepo: patientRepo}
}

func (uc *GetAllPatients) Execute(ctx context.Context) ([]*entities.Patient, error) {
	return uc.patientRepo.FindAll(ctx)
}
