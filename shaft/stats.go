package shaft

import "time"

// Stats describes the work done by one Extrapolator run.
type Stats struct {
	// PiecesSimulated is the number of pieces actually dropped.
	PiecesSimulated int64
	// WindConsumed is the number of pushes applied.
	WindConsumed int64
	// Fingerprints is the number of distinct states recorded.
	Fingerprints int
	// RowsPruned and LiveRows describe the shaft's memory at the end of the run.
	RowsPruned int
	LiveRows   int

	// CycleFound reports whether the height was extrapolated. The remaining
	// cycle fields are only set when it is true.
	CycleFound       bool
	CycleStart       int64
	CycleStartHeight int64
	CycleLength      int64
	CycleHeight      int64

	Duration time.Duration
}

// Result is the outcome of an Extrapolator run.
type Result struct {
	Height int64
	Stats  Stats
}
