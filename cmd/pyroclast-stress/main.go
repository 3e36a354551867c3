package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/plus3/pyroclast/shaft"
)

// directPieces is the piece count every solve is also simulated directly for.
const directPieces = 2022

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	length := flag.Int("length", 40, "The maximum length of each random wind schedule.")
	pieces := flag.Int64("pieces", 1_000_000_000_000, "The piece count to extrapolate to.")
	maxSimulated := flag.Int64("max-simulated", 200_000, "Pieces to simulate before giving up on finding a cycle.")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the random wind schedules.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.SetFlags(0)
	if *length < 1 {
		log.Fatalf("-length must be positive, got %d", *length)
	}

	log.Printf("Starting stress test with seed %d...", *seed)
	rng := rand.New(rand.NewPCG(*seed, *seed>>1|1))

	report := &Report{
		Duration:       *duration,
		WindLength:     *length,
		Pieces:         *pieces,
		MaxSimulated:   *maxSimulated,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running solves for %s...", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			wind := randomWind(rng, 1+rng.IntN(*length))
			err := solve(ctx, rng, report, wind, *pieces)
			if ctx.Err() != nil {
				break Loop
			}
			if err != nil {
				log.Fatalf("Solve failed: %v", err)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Stress test finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if len(report.Mismatches) > 0 {
		os.Exit(1)
	}
}

// solve runs one wind schedule several ways and records any disagreement
// between pruned and unpruned extrapolation or between extrapolation and
// direct simulation. Direct simulation is checked at a fixed piece count and
// at a random point past the second repeat of the detected cycle.
func solve(ctx context.Context, rng *rand.Rand, report *Report, wind *shaft.Wind, pieces int64) error {
	cfg := shaft.DefaultConfig()
	cfg.MaxSimulated = report.MaxSimulated
	pruned, err := shaft.NewExtrapolator(cfg, wind)
	if err != nil {
		return err
	}
	cfg.Prune = false
	unpruned, err := shaft.NewExtrapolator(cfg, wind)
	if err != nil {
		return err
	}

	res, err := pruned.RunContext(ctx, pieces)
	if errors.Is(err, shaft.ErrNoCycle) {
		report.RecordNoCycle()
		return nil
	}
	if err != nil {
		return err
	}
	report.Record(res.Stats)

	check, err := unpruned.RunContext(ctx, pieces)
	if err != nil {
		return err
	}
	if check.Height != res.Height {
		report.Mismatch(wind, fmt.Sprintf("%d pieces: pruned %d, unpruned %d", pieces, res.Height, check.Height))
	}

	targets := []int64{directPieces}
	if st := res.Stats; st.CycleFound {
		targets = append(targets, st.CycleStart+2*st.CycleLength+rng.Int64N(st.CycleLength))
	}
	for _, target := range targets {
		direct, err := pruned.Simulate(target)
		if err != nil {
			return err
		}
		extrapolated, err := pruned.RunContext(ctx, target)
		if err != nil {
			return err
		}
		if direct != extrapolated.Height {
			report.Mismatch(wind, fmt.Sprintf("%d pieces: simulated %d, extrapolated %d", target, direct, extrapolated.Height))
		}
	}
	return nil
}

func randomWind(rng *rand.Rand, n int) *shaft.Wind {
	var b strings.Builder
	b.Grow(n)
	for range n {
		if rng.IntN(2) == 0 {
			b.WriteByte('<')
		} else {
			b.WriteByte('>')
		}
	}
	return shaft.MustParseWind(b.String())
}
