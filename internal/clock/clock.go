// Package clock supplies "now" and "today" as injectable dependencies so
// time-dependent logic can be replayed deterministically in tests.
package clock

import (
	"time"

	"github.com/yurim-dev/healthmate/internal/model"
)

// Clock provides the current instant and calendar day.
type Clock interface {
	Now() time.Time
	Today() string
}

// System reads the wall clock in local time.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) Today() string { return model.DateOf(time.Now()) }

// Fixed always reports the same instant. Used in tests.
type Fixed struct {
	T time.Time
}

// At returns a Fixed clock pinned to t.
func At(t time.Time) Fixed { return Fixed{T: t} }

func (f Fixed) Now() time.Time { return f.T }

func (f Fixed) Today() string { return model.DateOf(f.T) }
