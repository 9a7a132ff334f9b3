package service

import (
	"context"
	"errors"
	"fmt"

	"nailpos/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Sentinel errors. Handlers map them to 404, 403 and 422.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)

// FieldError is a rejected input value. It matches ErrValidation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string        { return e.Field + ": " + e.Message }
func (e *FieldError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error { return &FieldError{Field: field, Message: msg} }

// notFound converts gorm.ErrRecordNotFound into ErrNotFound; other errors pass through.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}

// Actor is the caller of a write, taken from the bearer token.
type Actor struct {
	TenantID string
	UserID   string
	Role     string
}

// canWrite: owners and admins edit the catalog.
func (a Actor) canWrite() error {
	if a.Role == model.RoleOwner || a.Role == model.RoleAdmin {
		return nil
	}
	return fmt.Errorf("role %q cannot modify records: %w", a.Role, ErrForbidden)
}

// canDelete: hard deletes are owner-only.
func (a Actor) canDelete() error {
	if a.Role == model.RoleOwner {
		return nil
	}
	return fmt.Errorf("only the owner can permanently delete records: %w", ErrForbidden)
}

// canEditStaff: only an owner touches an owner's record (PIN, commission,
// active flag, role).
func (a Actor) canEditStaff(target *model.Staff) error {
	if target.Role == model.RoleOwner && a.Role != model.RoleOwner {
		return fmt.Errorf("only an owner can modify an owner: %w", ErrForbidden)
	}
	return nil
}

// Publisher announces collection changes to live subscribers. infra.Notifier satisfies it.
type Publisher interface {
	Publish(ctx context.Context, tenantID, collection string) error
}

// publish is best effort: a lost notification only delays subscribers until
// their next poll.
func publish(ctx context.Context, pub Publisher, tenantID, collection string) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, tenantID, collection); err != nil {
		log.Warn().Err(err).Str("tenant", tenantID).Str("collection", collection).Msg("change notification failed")
	}
}
