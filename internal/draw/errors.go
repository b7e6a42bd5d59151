package draw

import "errors"

var (
	// ErrInvalidState is returned by SetMode while the controller is disabled.
	ErrInvalidState = errors.New("draw: controller must be enabled before setting mode")
	// ErrInvalidMode is returned for an unknown mode identifier.
	ErrInvalidMode = errors.New("draw: invalid mode")
)
