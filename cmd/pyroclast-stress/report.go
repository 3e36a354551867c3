package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/plus3/pyroclast/shaft"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	WindLength     int
	Pieces         int64
	MaxSimulated   int64
	Seed           uint64
	GCPauseMetrics bool

	// Results
	Solves          int64
	TotalTime       time.Duration
	SolveMin        time.Duration
	SolveMax        time.Duration
	SolveTotal      time.Duration
	PiecesSimulated int64
	RowsPruned      int64
	MinCycle        int64
	MaxCycle        int64
	NoCycle         int64
	GaveUp          int64
	Mismatches      []Mismatch
	MemStatsStart   runtime.MemStats
	MemStatsEnd     runtime.MemStats
}

type Mismatch struct {
	Wind   string
	Detail string
}

// Record adds the statistics of one extrapolation run.
func (r *Report) Record(st shaft.Stats) {
	r.Solves++
	if r.Solves-r.GaveUp == 1 || st.Duration < r.SolveMin {
		r.SolveMin = st.Duration
	}
	r.SolveMax = max(r.SolveMax, st.Duration)
	r.SolveTotal += st.Duration
	r.PiecesSimulated += st.PiecesSimulated
	r.RowsPruned += int64(st.RowsPruned)

	if !st.CycleFound {
		r.NoCycle++
		return
	}
	if r.MinCycle == 0 || st.CycleLength < r.MinCycle {
		r.MinCycle = st.CycleLength
	}
	if st.CycleLength > r.MaxCycle {
		r.MaxCycle = st.CycleLength
	}
}

// RecordNoCycle counts a solve that gave up before finding a cycle.
func (r *Report) RecordNoCycle() {
	r.Solves++
	r.NoCycle++
	r.GaveUp++
}

// SolveAvg returns the mean duration of the solves that did not give up.
func (r *Report) SolveAvg() time.Duration {
	n := r.Solves - r.GaveUp
	if n <= 0 {
		return 0
	}
	return r.SolveTotal / time.Duration(n)
}

// Mismatch records a disagreement for the given wind schedule.
func (r *Report) Mismatch(wind *shaft.Wind, detail string) {
	s := wind.String()
	if len(s) > 64 {
		s = s[:64] + "..."
	}
	r.Mismatches = append(r.Mismatches, Mismatch{Wind: s, Detail: detail})
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Pyroclast Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Max Wind Length:** {{comma .WindLength}}
- **Target Pieces:** {{comma .Pieces}}
- **Max Simulated:** {{comma .MaxSimulated}}
- **Seed:** {{.Seed}}

## Solve Results
- **Total Solves:** {{comma .Solves}}
- **Total Test Time:** {{.TotalTime}}
- **Pieces Simulated:** {{comma .PiecesSimulated}}
- **Rows Pruned:** {{comma .RowsPruned}}
- **Cycle Length:** {{comma .MinCycle}} (min) -> {{comma .MaxCycle}} (max)
- **Solves Without Cycle:** {{comma .NoCycle}} ({{comma .GaveUp}} gave up)
- **Solve Time:**
  - **Avg:** {{.SolveAvg}}
  - **Min:** {{.SolveMin}}
  - **Max:** {{.SolveMax}}

## Mismatches
{{- range .Mismatches}}
- ` + "`{{.Wind}}`" + `: {{.Detail}}
{{- else}}
None.
{{- end}}

## Memory Usage
- Heap Alloc:     {{bytes .MemStatsStart.HeapAlloc}} (start) -> {{bytes .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{bytes .MemStatsStart.TotalAlloc}} (start) -> {{bytes .MemStatsEnd.TotalAlloc}} (end) -> delta: {{bytes (usub64 .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{bytes .MemStatsStart.Sys}} (start) -> {{bytes .MemStatsEnd.Sys}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"comma": func(v any) string {
			switch val := v.(type) {
			case int:
				return humanize.Comma(int64(val))
			case int64:
				return humanize.Comma(val)
			default:
				return "N/A"
			}
		},
		"bytes": humanize.Bytes,
		"usub64": func(a, b uint64) uint64 {
			return a - b
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
