package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// RemoteErrorKind clasifica las fallas de la API externa de stock orders.
type RemoteErrorKind string

const (
	RemoteHTTPStatus RemoteErrorKind = "http_status" // status distinto de 200/201
	RemoteParse      RemoteErrorKind = "parse"       // JSON malformado
	RemoteTimeout    RemoteErrorKind = "timeout"     // se excedió el tiempo máximo
	RemoteTransport  RemoteErrorKind = "transport"   // error de red u otro
)

// RemoteError error tipado de una llamada a push-api.
// Op identifica la operación ("get_stock_order" | "post_stock_order").
type RemoteError struct {
	Kind       RemoteErrorKind
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	switch e.Kind {
	case RemoteHTTPStatus:
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
	case RemoteTimeout:
		return fmt.Sprintf("%s: timeout", e.Op)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// RemoteErrorFrom clasifica un error de net/http como timeout o transporte.
func RemoteErrorFrom(op string, err error) *RemoteError {
	kind := RemoteTransport
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = RemoteTimeout
	}
	return &RemoteError{Kind: kind, Op: op, Err: err}
}

// RemoteKind devuelve el tipo de falla remota de err, o "" si no es un *RemoteError.
func RemoteKind(err error) RemoteErrorKind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// IsTimeout indica si err es un timeout de la API externa.
func IsTimeout(err error) bool {
	return RemoteKind(err) == RemoteTimeout
}
