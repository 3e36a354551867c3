package shaft

import "errors"

var (
	// ErrInvalidWind is returned when a wind schedule is empty or contains
	// anything other than '<' and '>'.
	ErrInvalidWind = errors.New("invalid wind schedule")

	// ErrInvalidConfig is returned by Config.Validate and the config loaders.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrBadCycle is returned when a repeated fingerprint does not describe a
	// positive cycle length, or the cycle fails to repeat a second time.
	ErrBadCycle = errors.New("bad cycle")

	// ErrNoCycle is returned when no cycle shows up within
	// Config.MaxSimulated pieces.
	ErrNoCycle = errors.New("no cycle found")

	// ErrNegativeCount is returned when asked for the height after a negative
	// number of pieces.
	ErrNegativeCount = errors.New("negative piece count")
)
