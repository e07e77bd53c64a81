package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/daniel1002-jpg/medication-management-api/pkg/domain/entities"
)

// patientRow refleja una fila de la tabla pacientes. Las columnas
// opcionales se leen como tipos Null* y se convierten a punteros al
// construir la entidad.
type patientRow struct {
	ID              string         `db:"id"`
	Nombre          string         `db:"nombre"`
	Email           string         `db:"email"`
	NumeroTelefono  sql.NullString `db:"numero_telefono"`
	Domicilio       sql.NullString `db:"domicilio"`
	FechaNacimiento sql.NullTime   `db:"fecha_nacimiento"`
	FechaAlta       sql.NullTime   `db:"fecha_alta"`
	ObraSocial      sql.NullString `db:"obra_social"`
}

type patientRepository struct {
	db *sqlx.DB
}

// NewPatientRepository crea el repositorio de pacientes sobre PostgreSQL.
// La conexión agrupada se construye una vez en el arranque y se inyecta
// aquí; el repositorio no gestiona su ciclo de vida.
func NewPatientRepository(db *sqlx.DB) *patientRepository {
	return &patientRepository{
		db: db,
	}
}

// Save inserta los campos normalizados y devuelve la fila persistida,
// incluyendo el id generado y el valor por defecto de fecha_alta. Una
// violación de unicidad sobre email se propaga tal cual (pq.Error con
// código 23505) para que el middleware la clasifique.
func (r *patientRepository) Save(ctx context.Context, patient *entities.Patient) (*entities.Patient, error) {
	query := `
		INSERT INTO pacientes (
			nombre, email, numero_telefono, domicilio, fecha_nacimiento, fecha_alta, obra_social
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING *
	`

	var row patientRow
	err := r.db.GetContext(
		ctx,
		&row,
		query,
		patient.Nombre,
		patient.Email,
		nullString(patient.NumeroTelefono),
		nullString(patient.Domicilio),
		nullFecha(patient.FechaNacimiento),
		nullTime(patient.FechaAlta),
		nullString(patient.ObraSocial),
	)
	if err != nil {
		return nil, err
	}

	return rowToEntity(row)
}

// FindAll devuelve todas las filas ordenadas por id descendente.
func (r *patientRepository) FindAll(ctx context.Context) ([]*entities.Patient, error) {
	query := `SELECT * FROM pacientes ORDER BY id DESC`

	var rows []patientRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	patients := make([]*entities.Patient, 0, len(rows))
	for _, row := range rows {
		patient, err := rowToEntity(row)
		if err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}

	return patients, nil
}

// FindByID devuelve la fila con ese id, o (nil, nil) si no existe.
func (r *patientRepository) FindByID(ctx context.Context, id string) (*entities.Patient, error) {
	query := `SELECT * FROM pacientes WHERE id = $1`

	var row patientRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToEntity(row)
}

// Update actualiza todos los campos mutables por id y devuelve la fila
// actualizada, o (nil, nil) si ninguna fila coincide. El id nunca se
// actualiza.
func (r *patientRepository) Update(ctx context.Context, id string, patient *entities.Patient) (*entities.Patient, error) {
	query := `
		UPDATE pacientes
		SET nombre = $1, email = $2, numero_telefono = $3, domicilio = $4,
		    fecha_nacimiento = $5, fecha_alta = $6, obra_social = $7
		WHERE id = $8
		RETURNING *
	`

	var row patientRow
	err := r.db.GetContext(
		ctx,
		&row,
		query,
		patient.Nombre,
		patient.Email,
		nullString(patient.NumeroTelefono),
		nullString(patient.Domicilio),
		nullFecha(patient.FechaNacimiento),
		nullTime(patient.FechaAlta),
		nullString(patient.ObraSocial),
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToEntity(row)
}

// DeleteByID borra la fila y devuelve su contenido previo, o (nil, nil)
// si no existía.
func (r *patientRepository) DeleteByID(ctx context.Context, id string) (*entities.Patient, error) {
	query := `DELETE FROM pacientes WHERE id = $1 RETURNING *`

	var row patientRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rowToEntity(row)
}

// rowToEntity traduce una fila a la entidad pasando por el constructor,
// de modo que lo que sale del repositorio está siempre normalizado.
func rowToEntity(row patientRow) (*entities.Patient, error) {
	attrs := entities.PatientAttributes{
		ID:     row.ID,
		Nombre: row.Nombre,
		Email:  row.Email,
	}

	if row.NumeroTelefono.Valid {
		attrs.NumeroTelefono = &row.NumeroTelefono.String
	}
	if row.Domicilio.Valid {
		attrs.Domicilio = &row.Domicilio.String
	}
	if row.FechaNacimiento.Valid {
		fecha := entities.Fecha{Time: row.FechaNacimiento.Time}
		attrs.FechaNacimiento = &fecha
	}
	if row.FechaAlta.Valid {
		attrs.FechaAlta = &row.FechaAlta.Time
	}
	if row.ObraSocial.Valid {
		attrs.ObraSocial = &row.ObraSocial.String
	}

	return entities.NewPatient(attrs)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFecha(f *entities.Fecha) sql.NullTime {
	if f == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: f.Time, Valid: true}
}
