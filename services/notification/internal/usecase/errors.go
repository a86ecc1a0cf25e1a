package usecase

import "errors"

var ErrNotFound = errors.New("notification not found")
