package s3tools

import (
	"errors"

	"gocloud.dev/gcerrors"
)

var (
	ErrNoBucket           = errors.New("s3tools: no bucket configured")
	ErrInvalidLocation    = errors.New("s3tools: invalid location")
	ErrUnknownScheme      = errors.New("s3tools: unknown storage scheme")
	ErrUnsupportedMode    = errors.New("s3tools: unsupported mode")
	ErrUnsupportedBackend = errors.New("s3tools: unsupported backend")
	ErrClosed             = errors.New("s3tools: buffer closed")
	ErrReadOnly           = errors.New("s3tools: buffer is read-only")
	ErrWriteOnly          = errors.New("s3tools: buffer is write-only")
)

// IsNotExist reports whether err is a storage error for a missing object.
// Storage errors are never wrapped by this package, so callers can also
// inspect them with gcerrors directly.
func IsNotExist(err error) bool {
	return err != nil && gcerrors.Code(err) == gcerrors.NotFound
}
