package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/plus3/pyroclast/shaft"
	"github.com/spf13/cobra"
)

// maxShowPieces bounds the direct simulation used by --show.
const maxShowPieces = 1_000_000

type options struct {
	configPath string
	pieces     []int64
	noPrune    bool
	show       int
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "pyroclast [input-file]",
		Short: "Predict the height of a stack of falling rocks",
		Long: `Reads a wind schedule of '<' and '>' characters and prints the height of
the rock stack after each requested number of pieces, one per line.
The schedule is read from stdin when no file (or "-") is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args, opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "pyroclast:", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML file with shaft settings")
	flags.Int64SliceVar(&opts.pieces, "pieces", []int64{2022, 1_000_000_000_000}, "piece counts to report heights for")
	flags.BoolVar(&opts.noPrune, "no-prune", false, "keep every settled row in memory")
	flags.IntVar(&opts.show, "show", 0, "draw the top N rows after the first piece count")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log cycle detection details to stderr")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	cfg, err := shaft.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.noPrune {
		cfg.Prune = false
	}
	logger := slog.New(slog.DiscardHandler)
	if opts.verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	cfg.Logger = logger

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	wind, err := shaft.ParseWind(string(input))
	if err != nil {
		return err
	}

	e, err := shaft.NewExtrapolator(cfg, wind)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, n := range opts.pieces {
		res, err := e.Run(n)
		if err != nil {
			return err
		}
		logger.Debug("solved",
			"pieces", n,
			"height", res.Height,
			"simulated", res.Stats.PiecesSimulated,
			"cycle", res.Stats.CycleFound,
			"elapsed", res.Stats.Duration)
		fmt.Fprintln(out, res.Height)
	}

	if opts.show > 0 && len(opts.pieces) > 0 {
		return show(out, cfg, wind, opts.pieces[0], opts.show)
	}
	return nil
}

func show(w io.Writer, cfg shaft.Config, wind *shaft.Wind, pieces int64, rows int) error {
	if pieces > maxShowPieces {
		return fmt.Errorf("--show needs a first piece count of at most %d, got %d", maxShowPieces, pieces)
	}
	sim, err := shaft.NewSimulation(cfg, wind)
	if err != nil {
		return err
	}
	sim.Run(pieces)
	_, err = io.WriteString(w, sim.Shaft().Render(rows))
	return err
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}
