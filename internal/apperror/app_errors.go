package apperror

import "errors"

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrPreferenceNotFound = errors.New("preference not found")
)
