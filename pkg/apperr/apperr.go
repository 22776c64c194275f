// Package apperr defines the error taxonomy shared by services and
// controllers. Services return these; pkg/response maps them to status
// codes at the HTTP boundary via errors.Is / errors.As.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound marks a missing order, product, shipping tier, category,
// expense or user. Wrap it with context: fmt.Errorf("order %s: %w", id,
// apperr.ErrNotFound).
var ErrNotFound = errors.New("not found")

// ValidationError rejects bad input before any persistence or stock
// effect. Fields maps the offending field name to a message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validation builds a ValidationError for a single field.
func Validation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ValidationFields wraps a field→message map (e.g. from pkg/validate).
func ValidationFields(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ItemFailure records one line item that could not be stock-adjusted.
type ItemFailure struct {
	ProductID string
	Err       error
}

// PartialStockError reports a multi-item stock adjustment where some items
// failed while others were applied. The applied items are NOT rolled back;
// callers decide whether to compensate.
type PartialStockError struct {
	Direction string // "increase" | "decrease"
	Failures  []ItemFailure
}

func (e *PartialStockError) Error() string {
	return fmt.Sprintf("stock %s partially failed for %d item(s)", e.Direction, len(e.Failures))
}

// Report renders the failures in a serializable shape for API responses.
func (e *PartialStockError) Report() []map[string]string {
	out := make([]map[string]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, map[string]string{
			"product":   f.ProductID,
			"direction": e.Direction,
			"error":     f.Err.Error(),
		})
	}
	return out
}

// Unwrap exposes the first underlying cause for errors.Is chains.
func (e *PartialStockError) Unwrap() error {
	if len(e.Failures) == 0 {
		return nil
	}
	return e.Failures[0].Err
}

// Store wraps a transient data-store failure so the boundary can
// distinguish it from domain errors.
func Store(op string, err error) error {
	return fmt.Errorf("store: %s: %w", op, err)
}
