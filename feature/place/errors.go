package place

import "errors"

var (
	ErrInvalidName            = errors.New("place name is required")
	ErrServerNotFound         = errors.New("server not found")
	ErrStoreFailed            = errors.New("database unavailable")
	ErrLookupFailed           = errors.New("platform lookup failed")
	ErrRoleCreationFailed     = errors.New("role creation failed")
	ErrCategoryCreationFailed = errors.New("category creation failed")
	ErrPersistFailed          = errors.New("persist failed")
	// ErrRollbackFailed is joined to the step error when created resources could not be deleted.
	ErrRollbackFailed = errors.New("rollback failed")
)

const TokenSuccess = "create_place__success"

// Key maps a place creation error to its translation key.
func Key(err error) string {
	switch {
	case err == nil:
		return TokenSuccess
	case errors.Is(err, ErrRollbackFailed):
		return "create_role__rollback_failed"
	case errors.Is(err, ErrInvalidName):
		return "create_place__invalid_name"
	case errors.Is(err, ErrServerNotFound):
		return "create_place__server_not_found"
	case errors.Is(err, ErrStoreFailed):
		return "create_place__database_not_found"
	case errors.Is(err, ErrRoleCreationFailed):
		return "create_place__role_not_created"
	case errors.Is(err, ErrCategoryCreationFailed), errors.Is(err, ErrPersistFailed):
		return "create_place__rollback_complete"
	default:
		return "create_place__failed"
	}
}
