package shaft

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Extrapolator computes the stack height after an arbitrary number of pieces
// by simulating until the state repeats and then skipping whole cycles.
type Extrapolator struct {
	cfg  Config
	wind *Wind
	log  *slog.Logger
}

// NewExtrapolator validates cfg and returns an extrapolator for the given
// wind schedule. Every run starts from an empty shaft at the start of the
// schedule.
func NewExtrapolator(cfg Config, wind *Wind) (*Extrapolator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Extrapolator{
		cfg:  cfg,
		wind: wind.Restart(),
		log:  cfg.logger(),
	}, nil
}

// Height returns the stack height after target pieces.
func (e *Extrapolator) Height(target int64) (int64, error) {
	res, err := e.Run(target)
	if err != nil {
		return 0, err
	}
	return res.Height, nil
}

// Run returns the stack height after target pieces along with statistics
// about how it was obtained.
func (e *Extrapolator) Run(target int64) (Result, error) {
	return e.RunContext(context.Background(), target)
}

// ctxCheckInterval is how many pieces are dropped between context checks.
const ctxCheckInterval = 4096

// RunContext is Run with cancellation. A cycle is only used once it has been
// seen to repeat twice with the same height gain; the height after target is
// then extrapolated from the state at the end of the second repeat.
func (e *Extrapolator) RunContext(ctx context.Context, target int64) (Result, error) {
	if target < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrNegativeCount, target)
	}
	start := time.Now()

	sim, err := NewSimulation(e.cfg, e.wind)
	if err != nil {
		return Result{}, err
	}
	det := NewDetector(len(e.cfg.PieceCycle), e.wind.Len())
	defer det.Reset()
	sh := sim.Shaft()

	var res Result
	height := int64(-1)
	for height < 0 && sim.Pieces() < target {
		if e.cfg.MaxSimulated > 0 && sim.Pieces() >= e.cfg.MaxSimulated {
			return Result{}, fmt.Errorf("%w: after %d pieces and %d fingerprints",
				ErrNoCycle, sim.Pieces(), det.Len())
		}
		if err := e.step(ctx, sim, 1); err != nil {
			return Result{}, err
		}
		key, ok := det.Fingerprint(sim.Pieces(), sim.Wind().Index(), sh)
		if !ok {
			continue
		}
		first, ok := det.Check(key, Record{Piece: sim.Pieces(), Height: sim.Height()})
		if !ok {
			continue
		}

		cycleLength := sim.Pieces() - first.Piece
		if cycleLength <= 0 {
			return Result{}, fmt.Errorf("%w: length %d at piece %d", ErrBadCycle, cycleLength, sim.Pieces())
		}
		cycleHeight := sim.Height() - first.Height
		confirmAt := sim.Pieces() + cycleLength
		if confirmAt > target {
			// Cheaper to finish directly than to confirm.
			break
		}

		e.log.Debug("cycle detected",
			"start", first.Piece,
			"length", cycleLength,
			"height", cycleHeight,
			"fingerprints", det.Len())

		want := sim.Height() + cycleHeight
		if err := e.step(ctx, sim, cycleLength); err != nil {
			return Result{}, err
		}
		again, ok := det.Fingerprint(sim.Pieces(), sim.Wind().Index(), sh)
		if !ok || again != key || sim.Height() != want {
			return Result{}, fmt.Errorf("%w: cycle of %d pieces from piece %d did not repeat at piece %d",
				ErrBadCycle, cycleLength, first.Piece, sim.Pieces())
		}

		fullCycles := (target - sim.Pieces()) / cycleLength
		remainder := (target - sim.Pieces()) % cycleLength
		if err := e.step(ctx, sim, remainder); err != nil {
			return Result{}, err
		}
		height = sim.Height() + fullCycles*cycleHeight

		res.Stats.CycleFound = true
		res.Stats.CycleStart = first.Piece
		res.Stats.CycleStartHeight = first.Height
		res.Stats.CycleLength = cycleLength
		res.Stats.CycleHeight = cycleHeight
	}
	if height < 0 {
		if err := e.step(ctx, sim, target-sim.Pieces()); err != nil {
			return Result{}, err
		}
		height = sim.Height()
	}

	res.Height = height
	res.Stats.PiecesSimulated = sim.Pieces()
	res.Stats.WindConsumed = sim.Wind().Index()
	res.Stats.Fingerprints = det.Len()
	res.Stats.RowsPruned = sh.PrunedRows()
	res.Stats.LiveRows = sh.LiveRows()
	res.Stats.Duration = time.Since(start)
	return res, nil
}

// step drops n pieces, checking ctx every ctxCheckInterval pieces.
func (e *Extrapolator) step(ctx context.Context, sim *Simulation, n int64) error {
	for n > 0 {
		if sim.Pieces()%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		sim.Step()
		n--
	}
	return nil
}

// Simulate returns the stack height after target pieces by dropping every
// one of them.
func (e *Extrapolator) Simulate(target int64) (int64, error) {
	if target < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeCount, target)
	}
	sim, err := NewSimulation(e.cfg, e.wind)
	if err != nil {
		return 0, err
	}
	sim.Run(target)
	return sim.Height(), nil
}
