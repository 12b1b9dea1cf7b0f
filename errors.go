package billplz

import (
	"errors"
	"fmt"

	apperrors "github.com/kbukum/billplz/errors"
)

// ErrUnsupportedVersion matches any *UnsupportedVersionError with errors.Is.
var ErrUnsupportedVersion = errors.New("billplz: unsupported API version")

// UnsupportedVersionError is returned when a resource is requested for an
// API version the client does not support.
type UnsupportedVersionError struct {
	Version Version
}

// Error implements the error interface.
func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("billplz: API version %s is not supported", e.Version)
}

// Is reports whether target is ErrUnsupportedVersion.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// AppError converts e into the client-wide error type.
func (e *UnsupportedVersionError) AppError() *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeUnsupportedVersion, e.Error(), 0).
		WithDetail("version", string(e.Version)).
		WithCause(e)
}

// IsUnsupportedVersion reports whether err is an *UnsupportedVersionError.
func IsUnsupportedVersion(err error) bool {
	return errors.Is(err, ErrUnsupportedVersion)
}
