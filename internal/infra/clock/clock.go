// Package clock provides the wall clock used outside tests.
package clock

import "time"

// System reads the current time in UTC.
type System struct{}

// New returns the system clock.
func New() System { return System{} }

// Now implements adapter.Clock.
func (System) Now() time.Time { return time.Now().UTC() }
