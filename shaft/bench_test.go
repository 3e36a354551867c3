package shaft

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func randomWind(n int, seed uint64) *Wind {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var b strings.Builder
	for range n {
		if r.IntN(2) == 0 {
			b.WriteByte('<')
		} else {
			b.WriteByte('>')
		}
	}
	return MustParseWind(b.String())
}

func BenchmarkDrop(b *testing.B) {
	for _, prune := range []bool{true, false} {
		name := "pruned"
		if !prune {
			name = "unpruned"
		}
		b.Run(name, func(b *testing.B) {
			cfg := DefaultConfig()
			cfg.Prune = prune
			sim, err := NewSimulation(cfg, randomWind(10091, 1))
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sim.Step()
			}
		})
	}
}

func BenchmarkExtrapolateExample(b *testing.B) {
	e, err := NewExtrapolator(DefaultConfig(), MustParseWind(exampleWind))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Height(1_000_000_000_000); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSimulate2022(b *testing.B) {
	e, err := NewExtrapolator(DefaultConfig(), randomWind(10091, 2))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Simulate(2022); err != nil {
			b.Fatal(err)
		}
	}
}
