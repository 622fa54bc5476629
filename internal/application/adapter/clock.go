// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock provides the current time to use cases. Status and early-payment
// decisions always take "now" through this interface so tests can pin time.
type Clock interface {
	Now() time.Time
}
