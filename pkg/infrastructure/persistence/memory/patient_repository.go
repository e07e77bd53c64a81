package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/entities"
)

// PatientRepository es una implementación en memoria del contrato de
// repositorio, usada por los tests. Reproduce la semántica de la
// implementación relacional: (nil, nil) cuando no hay fila, id generado
// al guardar, fecha_alta por defecto y unicidad de email señalada con
// el mismo error de clave duplicada que emite lib/pq.
type PatientRepository struct {
	mu       sync.RWMutex
	patients map[string]entities.PatientAttributes
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{
		patients: map[string]entities.PatientAttributes{},
	}
}

func (r *PatientRepository) Save(_ context.Context, patient *entities.Patient) (*entities.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.patients {
		if stored.Email == patient.Email {
			return nil, duplicateEmailError()
		}
	}

	attrs := patient.Attributes()
	attrs.ID = uuid.NewString()
	if attrs.FechaAlta == nil {
		now := time.Now()
		attrs.FechaAlta = &now
	}
	r.patients[attrs.ID] = attrs

	return entities.NewPatient(attrs)
}

func (r *PatientRepository) FindAll(_ context.Context) ([]*entities.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.patients))
	for id := range r.patients {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	patients := make([]*entities.Patient, 0, len(ids))
	for _, id := range ids {
		patient, err := entities.NewPatient(r.patients[id])
		if err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}

	return patients, nil
}

func (r *PatientRepository) FindByID(_ context.Context, id string) (*entities.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	attrs, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	return entities.NewPatient(attrs)
}

func (r *PatientRepository) Update(_ context.Context, id string, patient *entities.Patient) (*entities.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[id]; !ok {
		return nil, nil
	}

	for storedID, stored := range r.patients {
		if storedID != id && stored.Email == patient.Email {
			return nil, duplicateEmailError()
		}
	}

	attrs := patient.Attributes()
	attrs.ID = id
	r.patients[id] = attrs

	return entities.NewPatient(attrs)
}

func (r *PatientRepository) DeleteByID(_ context.Context, id string) (*entities.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attrs, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	delete(r.patients, id)

	return entities.NewPatient(attrs)
}

// Count devuelve el número de pacientes almacenados. Lo usan los tests
// para comprobar que los fallos no dejan efectos secundarios.
func (r *PatientRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patients)
}

// duplicateEmailError imita el error que produce lib/pq cuando se viola
// la restricción de unicidad sobre email.
func duplicateEmailError() error {
	return &pq.Error{
		Code:       "23505",
		Message:    `duplicate key value violates unique constraint "pacientes_email_key"`,
		Constraint: "pacientes_email_key",
	}
}
