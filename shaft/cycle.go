package shaft

// Key fingerprints the state of a simulation between two drops. Two moments
// sharing a key drop the same next shape, see the same upcoming wind, and
// have the same open surface relative to the stack top, so everything after
// them repeats.
type Key struct {
	Piece int
	Wind  int

	// Profile holds each column's topmost row minus the stack top. Columns
	// beyond the shaft width are zero.
	Profile [MaxWidth]int32

	// Surface is the reachable open region, see Shaft.Surface. It covers
	// holes and overhangs the profile cannot see.
	Surface string
}

// Record is the piece count and height observed when a key was first seen.
type Record struct {
	Piece  int64
	Height int64
}

// Detector remembers every fingerprint seen during a run.
type Detector struct {
	pieceCycle int
	windLen    int
	seen       map[Key]Record
}

// NewDetector returns a detector for a piece cycle and wind schedule of the
// given lengths.
func NewDetector(pieceCycle, windLen int) *Detector {
	return &Detector{
		pieceCycle: pieceCycle,
		windLen:    windLen,
		seen:       make(map[Key]Record),
	}
}

// Fingerprint reduces the simulation state to a Key. pieceIndex is the number
// of pieces dropped so far and windIndex the number of pushes consumed. It
// reports false when the shaft's surface is too deep to fingerprint.
func (d *Detector) Fingerprint(pieceIndex, windIndex int64, s *Shaft) (Key, bool) {
	surface, ok := s.Surface()
	if !ok {
		return Key{}, false
	}
	k := Key{
		Piece:   int(pieceIndex % int64(d.pieceCycle)),
		Wind:    int(windIndex % int64(d.windLen)),
		Surface: surface,
	}
	for c, y := range s.skyline {
		k.Profile[c] = int32(y - s.top)
	}
	return k, true
}

// Check returns the record stored under key and true if the key was seen
// before. Otherwise it stores rec under key and returns false.
func (d *Detector) Check(key Key, rec Record) (Record, bool) {
	if first, ok := d.seen[key]; ok {
		return first, true
	}
	d.seen[key] = rec
	return Record{}, false
}

// Len returns the number of distinct fingerprints recorded.
func (d *Detector) Len() int {
	return len(d.seen)
}

// Reset forgets every recorded fingerprint.
func (d *Detector) Reset() {
	clear(d.seen)
}
