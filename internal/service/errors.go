package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jask/inventorly/internal/forms"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrNoCode               = errors.New("no verification code issued for this number")
	ErrCodeExpired          = errors.New("verification code expired")
	ErrCodeMismatch         = errors.New("verification code does not match")
	ErrInvalidStatus        = errors.New("unknown status")
	ErrInsufficientQuantity = errors.New("not enough units available")
	ErrProjectClosed        = errors.New("project is not active")
	ErrStage                = errors.New("bulk upload is not at that stage")
)

// ValidationError carries the inline field messages of a rejected form.
type ValidationError struct {
	Fields forms.Errors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// wait stands in for a network round trip. It returns early with the
// context's error when the caller navigates away.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
