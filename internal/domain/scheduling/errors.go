package scheduling

import (
	"fmt"
	"sort"
	"strings"
)

// ===============================
// Erros de validação (por campo)
// ===============================

// FieldErrors acumula mensagens de validação por campo do formulário.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// ValidationError carrega todas as violações encontradas de uma vez,
// no formato esperado pela camada de formulário.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func newFieldError(field, message string) *ValidationError {
	fe := FieldErrors{}
	fe.Add(field, message)
	return &ValidationError{Fields: fe}
}

// ===============================
// Erros de transição de estado
// ===============================

type InvalidStateError struct {
	Action  string
	Current Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s appointment in status %q", e.Action, e.Current)
}

// AlreadyCancelledError é mantido separado de InvalidStateError porque
// a mensagem exibida ao usuário é diferente.
type AlreadyCancelledError struct{}

func (e *AlreadyCancelledError) Error() string {
	return "appointment is already cancelled"
}

// ===============================
// Referências inexistentes
// ===============================

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}
