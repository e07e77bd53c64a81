package apperrors

// Kind clasifica los errores de negocio que puede producir la aplicación.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindDuplicate
	KindStorage
)

// Mensajes de error de negocio. El middleware de errores depende del
// contenido textual de estos mensajes para clasificar la respuesta HTTP,
// así que no deben cambiarse sin revisar esa clasificación.
const (
	MsgNombreEmailObligatorios = "El nombre y el email son obligatorios"
	MsgFormatoEmailInvalido    = "Formato de email inválido"
	MsgIDPacienteRequerido     = "ID de paciente es requerido"
	MsgPacienteNoEncontrado    = "Paciente no encontrado"
	MsgEmailYaRegistrado       = "El email ya está registrado"
	MsgErrorInterno            = "Error interno del servidor"
)

// Error es el error tipado de la aplicación: una clase, un estado HTTP
// sugerido y un mensaje legible. El error de bajo nivel (si existe) se
// conserva en Err y se expone vía Unwrap.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidation crea un error de validación (campos faltantes o inválidos).
func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Status: 400, Message: message}
}

// NewNotFound crea un error de recurso inexistente.
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: 404, Message: message}
}

// NewDuplicate crea un error por violación de unicidad.
func NewDuplicate(message string) *Error {
	return &Error{Kind: KindDuplicate, Status: 409, Message: message}
}

// NewStorage envuelve un fallo de la capa de persistencia.
func NewStorage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Status: 500, Message: message, Err: err}
}
