package usecase

import (
	"errors"
	"fmt"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/integration/lintra"
)

// Domain error codes.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeDragConflict = "DRAG_IN_PROGRESS"
	CodeNoDrag       = "NO_DRAG"
	CodeRemote       = "REMOTE_ERROR"
	CodeDatabase     = "DATABASE_ERROR"
)

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ActionError names the user action that failed; it is what ends up in the alert.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	if msg := lintra.RemoteMessage(e.Err); msg != "" {
		return fmt.Sprintf("Erro ao %s: %s", e.Action, msg)
	}
	return fmt.Sprintf("Erro ao %s.", e.Action)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	return errors.Is(err, entity.ErrNotFound)
}

func validationError(err error) error {
	return &DomainError{Code: CodeValidation, Message: err.Error(), Err: err}
}

func validationErrors(errs []ValidationError) error {
	msg := "validation failed: "
	for i, e := range errs {
		if i > 0 {
			msg += ", "
		}
		msg += e.Field + " (" + e.Message + ")"
	}
	return &DomainError{Code: CodeValidation, Message: msg}
}

func notFound(msg string) error {
	return &DomainError{Code: CodeNotFound, Message: msg, Err: entity.ErrNotFound}
}

func remoteFailure(action string, err error) error {
	return &ActionError{
		Action: action,
		Err:    &TechnicalError{Code: CodeRemote, Message: err.Error(), Err: err},
	}
}
