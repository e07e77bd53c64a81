package repositories

import (
	"context"

	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/entities"
)

// PatientRepository define el contrato de persistencia de pacientes.
// Las operaciones por id devuelven (nil, nil) cuando no existe fila:
// la ausencia no es un error de la capa de persistencia. Los fallos de
// bajo nivel (conectividad, violación de restricciones) se propagan
// sin envolver al caso de uso que llama.
type PatientRepository interface {
	Save(ctx context.Context, patient *entities.Patient) (*entities.Patient, error)
	FindAll(ctx context.Context) ([]*entities.Patient, error)
	FindByID(ctx context.Context, id string) (*entities.Patient, error)
	Update(ctx context.Context, id string, patient *entities.Patient) (*entities.Patient, error)
	DeleteByID(ctx context.Context, id string) (*entities.Patient, error)
}
