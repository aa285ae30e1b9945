package clock

import (
	"fmt"
	"time"
)

// Clock reloj inyectable. El bot original forzaba la zona de Lima
// parcheando el datetime global; aquí la zona vive en el reloj y se
// inyecta explícitamente en cada servicio que necesite la hora actual.
//
// Invariante: Now() devuelve el instante ya convertido a la zona operativa,
// exactamente una vez. Ningún consumidor debe volver a llamar In().
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type realClock struct {
	loc *time.Location
}

// New crea un reloj real fijado a la zona indicada (ej. "America/Lima")
func New(zona string) (Clock, error) {
	loc, err := time.LoadLocation(zona)
	if err != nil {
		return nil, fmt.Errorf("cargar zona horaria %q: %w", zona, err)
	}
	return &realClock{loc: loc}, nil
}

func (c *realClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c *realClock) Location() *time.Location { return c.loc }

// Fixed reloj congelado para pruebas
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time           { return f.T }
func (f Fixed) Location() *time.Location { return f.T.Location() }
