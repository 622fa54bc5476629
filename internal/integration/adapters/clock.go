package adapters

import (
	"time"

	"github.com/budgetwise/backend/internal/application/adapter"
)

// systemClock implements adapter.Clock with the wall clock.
type systemClock struct{}

// NewSystemClock creates a clock backed by time.Now in UTC.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
