package entity

import "time"

// AnnotationTypeComment tipo de mensaje usado para las notas de integración.
const AnnotationTypeComment = "comment"

// Annotation entrada del registro de actividad de una orden (solo inserción, nunca se edita).
type Annotation struct {
	ID          string
	OrderID     string
	Body        string
	MessageType string
	CreatedAt   time.Time
}
