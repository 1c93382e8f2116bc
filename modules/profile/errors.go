package profile

import "errors"

var (
	ErrNotFound             = errors.New("profile: not found")
	ErrUsernameTaken        = errors.New("profile: username already taken")
	ErrUnsupportedMediaType = errors.New("profile: unsupported media type")
	ErrMalformedBody        = errors.New("profile: malformed request body")
	ErrHashPassword         = errors.New("profile: failed to hash password")
	ErrStore                = errors.New("profile: store failure")
)
