package entities

import (
	"strings"
	"time"
)

const fechaLayout = "2006-01-02"

// Fecha representa una fecha de calendario (sin hora). En JSON viaja como
// "YYYY-MM-DD", que es el formato que usan los clientes para
// fecha_nacimiento; también acepta timestamps RFC3339 al deserializar.
type Fecha struct {
	time.Time
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.Format(fechaLayout) + `"`), nil
}

func (f *Fecha) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(fechaLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	f.Time = t
	return nil
}
