package setup

import (
	"errors"
	"fmt"

	"rpbot/core/interaction"
)

var (
	ErrServerNotFound         = errors.New("server not found")
	ErrLookupFailed           = errors.New("platform lookup failed")
	ErrPreconditionFailed     = errors.New("partial setup has not run")
	ErrRoleCreationFailed     = errors.New("role creation failed")
	ErrReorderFailed          = errors.New("reorder failed")
	ErrCategoryCreationFailed = errors.New("category creation failed")
	ErrChannelCreationFailed  = errors.New("channel creation failed")
	ErrPersistFailed          = errors.New("persist failed")
	ErrRollbackFailed         = errors.New("rollback failed")
	ErrConfirmFailed          = errors.New("confirmation prompt failed")
	// ErrTimeout aliases the gate timeout so callers need only this package.
	ErrTimeout = interaction.ErrTimeout
)

// SetupError is a typed setup failure. It matches its Kind and its Cause with errors.Is.
type SetupError struct {
	Kind error
	// Resource names the role, category or channel involved, if any.
	Resource string
	Cause    error
}

func (e *SetupError) Error() string {
	msg := e.Kind.Error()
	if e.Resource != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Resource)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *SetupError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, resource string, cause error) *SetupError {
	return &SetupError{Kind: kind, Resource: resource, Cause: cause}
}

// Key maps a setup error to its translation key.
func Key(err error) string {
	var se *SetupError
	resource := ""
	if errors.As(err, &se) {
		resource = se.Resource
	}

	switch {
	case err == nil:
		return string(TokenServerSuccess)
	case errors.Is(err, ErrServerNotFound):
		return "setup__server_not_found"
	case errors.Is(err, ErrTimeout):
		return "setup__server_already_setup_timeout"
	case errors.Is(err, ErrRoleCreationFailed) && resource != "":
		return fmt.Sprintf("setup__%s_role_not_created", resource)
	case errors.Is(err, ErrReorderFailed):
		return "setup__reorder_went_wrong"
	case errors.Is(err, ErrCategoryCreationFailed) && resource != "":
		return fmt.Sprintf("setup__%s_category_not_created", resource)
	case errors.Is(err, ErrChannelCreationFailed) && resource != "":
		return fmt.Sprintf("setup__%s_channel_not_created", resource)
	case errors.Is(err, ErrPersistFailed):
		return "setup__server_update_failed"
	case errors.Is(err, ErrRollbackFailed):
		return "setup__rollback_failed"
	default:
		return string(TokenFailed)
	}
}
