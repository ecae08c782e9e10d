package usecase

import (
	"errors"

	"github.com/riskibarqy/live-match/internal/domain/match"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidEventType      = match.ErrInvalidEventType
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
