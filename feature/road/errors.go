package road

import "errors"

var (
	ErrServerNotFound        = errors.New("server not found")
	ErrServerNotSetUp        = errors.New("roads category not provisioned")
	ErrStoreFailed           = errors.New("database unavailable")
	ErrPlaceOneNotFound      = errors.New("first place not found")
	ErrPlaceTwoNotFound      = errors.New("second place not found")
	ErrSamePlace             = errors.New("a road needs two different places")
	ErrLookupFailed          = errors.New("platform lookup failed")
	ErrRoleCreationFailed    = errors.New("role creation failed")
	ErrChannelCreationFailed = errors.New("channel creation failed")
	ErrPersistFailed         = errors.New("persist failed")
	// ErrRollbackFailed is joined to the step error when created resources could not be deleted.
	ErrRollbackFailed = errors.New("rollback failed")
)

const TokenSuccess = "create_road__success"

// Key maps a road creation error to its translation key.
func Key(err error) string {
	rolledBack := !errors.Is(err, ErrRollbackFailed)

	switch {
	case err == nil:
		return TokenSuccess
	case errors.Is(err, ErrServerNotFound):
		return "create_road__server_not_found"
	case errors.Is(err, ErrServerNotSetUp):
		return "create_road__server_not_set_up"
	case errors.Is(err, ErrStoreFailed):
		return "create_road__database_error"
	case errors.Is(err, ErrPlaceOneNotFound):
		return "create_place__place_one_not_found"
	case errors.Is(err, ErrPlaceTwoNotFound):
		return "create_place__place_two_not_found"
	case errors.Is(err, ErrSamePlace):
		return "create_road__same_place"
	case errors.Is(err, ErrRoleCreationFailed):
		return "create_road__role_creation_failed"
	case errors.Is(err, ErrChannelCreationFailed) && rolledBack:
		return "create_road__create_channel_failed_rollback_success"
	case errors.Is(err, ErrChannelCreationFailed):
		return "create_road__create_channel_failed_rollback_failed"
	case errors.Is(err, ErrPersistFailed) && rolledBack:
		return "create_road__insert_road_failed_rollback_success"
	case errors.Is(err, ErrPersistFailed):
		return "create_road__insert_road_failed_rollback_failed"
	default:
		return "create_road__failed"
	}
}
