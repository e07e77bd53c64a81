package usecases

import (
	"context"
	"time"

	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/entities"
	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/repositories"
)

// CreatePatient registra un paciente nuevo.
type CreatePatient struct {
	patientRepo repositories.PatientRepository
}

func NewCreatePatient(patientRepo repositories.PatientRepository) *CreatePatient {
	return &CreatePatient{patientRepo: patientRepo}
}

// Execute descarta cualquier id enviado por el cliente, completa
// fecha_alta con el instante actual si no viene, valida construyendo la
// entidad y la persiste. Los errores de validación y de persistencia se
// propagan sin tocar.
func (uc *CreatePatient) Execute(ctx context.Context, input PatientInput) (*entities.Patient, error) {
	fechaAlta := input.FechaAlta
	if fechaAlta == nil {
		now := time.Now()
		fechaAlta = &now
	}

	patient, err := entities.NewPatient(entities.PatientAttributes{
		Nombre:          input.Nombre,
		Email:           input.Email,
		NumeroTelefono:  input.NumeroTelefono,
		Domicilio:       input.Domicilio,
		FechaNacimiento: input.FechaNacimiento,
		FechaAlta:       fechaAlta,
		ObraSocial:      input.ObraSocial,
	})
	if err != nil {
		return nil, err
	}

	return uc.patientRepo.Save(ctx, patient)
}
