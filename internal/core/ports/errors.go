package ports

import "errors"

// ErrUniqueViolation is wrapped by repositories when an insert hits a
// unique constraint, so services can map races to Conflict without
// knowing the storage engine.
var ErrUniqueViolation = errors.New("unique constraint violation")
