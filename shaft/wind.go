package shaft

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Direction

// Direction is a single horizontal push.
type Direction uint8

const (
	Left Direction = iota
	Right
)

// Delta returns the column change caused by the push.
func (d Direction) Delta() int {
	if d == Left {
		return -1
	}
	return 1
}

// Wind replays a fixed schedule of pushes cyclically. The schedule itself is
// immutable and may be shared between cursors created with Restart.
type Wind struct {
	pushes   []Direction
	pos      int
	consumed int64
}

// ParseWind parses a schedule made of '<' and '>' characters. Surrounding
// whitespace is ignored.
func ParseWind(s string) (*Wind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty schedule", ErrInvalidWind)
	}
	pushes := make([]Direction, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			pushes[i] = Left
		case '>':
			pushes[i] = Right
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidWind, s[i], i)
		}
	}
	return &Wind{pushes: pushes}, nil
}

// MustParseWind is like ParseWind but panics on error.
func MustParseWind(s string) *Wind {
	w, err := ParseWind(s)
	if err != nil {
		panic(err)
	}
	return w
}

// Next returns the current push and advances the cursor.
func (w *Wind) Next() Direction {
	d := w.pushes[w.pos]
	w.pos++
	if w.pos == len(w.pushes) {
		w.pos = 0
	}
	w.consumed++
	return d
}

// Len returns the length of the schedule.
func (w *Wind) Len() int {
	return len(w.pushes)
}

// Index returns the total number of pushes consumed.
func (w *Wind) Index() int64 {
	return w.consumed
}

// Phase returns the position of the next push within the schedule.
func (w *Wind) Phase() int {
	return w.pos
}

// Restart returns a new cursor over the same schedule positioned at its start.
func (w *Wind) Restart() *Wind {
	return &Wind{pushes: w.pushes}
}

func (w *Wind) String() string {
	var b strings.Builder
	b.Grow(len(w.pushes))
	for _, d := range w.pushes {
		if d == Left {
			b.WriteByte('<')
		} else {
			b.WriteByte('>')
		}
	}
	return b.String()
}
