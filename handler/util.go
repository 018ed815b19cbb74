package handler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/phbpx/addressbook"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// usageError is returned when a command gets too few arguments.
type usageError string

func (e usageError) Error() string { return string(e) }

func respond(ctx context.Context, w io.Writer, msg string) {
	_, span := otel.GetTracerProvider().Tracer("").Start(ctx, "handler.respond")
	span.SetAttributes(attribute.Int("reply.length", len(msg)))
	defer span.End()

	if msg == "" {
		return
	}
	fmt.Fprintln(w, msg)
}

func respondErr(ctx context.Context, w io.Writer, err error) {
	respond(ctx, w, err.Error())
}

// errorKind names the kind of a command error for logs and spans.
func errorKind(err error) string {
	var usage usageError
	switch {
	case errors.As(err, &usage):
		return "usage"
	case errors.Is(err, addressbook.ErrValidation):
		return "validation"
	case errors.Is(err, addressbook.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, addressbook.ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
