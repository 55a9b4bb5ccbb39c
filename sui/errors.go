package sui

import "github.com/pkg/errors"

// Predefined errors.
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrObjectNotShared    = errors.New("object is not shared")
	ErrObjectDeleted      = errors.New("object deleted")
	ErrNoCoinsFound       = errors.New("no coins found")
	ErrDevInspectFailed   = errors.New("dev inspect failed")
	ErrGetReferenceGasFee = errors.New("failed to get reference gas price")
)
