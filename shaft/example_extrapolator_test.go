package shaft_test

import (
	"fmt"

	"github.com/plus3/pyroclast/shaft"
)

// ExampleExtrapolator computes the stack height for a piece count that is far
// too large to simulate. The extrapolator drops pieces until the open surface,
// the next piece and the wind position repeat, checks that the repeat happens
// once more, then skips ahead by whole cycles and simulates only the
// remainder.
func ExampleExtrapolator() {
	wind, err := shaft.ParseWind(">>><<><>><<<>><>>><<<>>><<<><<<>><>><<>>")
	if err != nil {
		panic(err)
	}

	e, err := shaft.NewExtrapolator(shaft.DefaultConfig(), wind)
	if err != nil {
		panic(err)
	}

	for _, pieces := range []int64{2022, 1_000_000_000_000} {
		height, err := e.Height(pieces)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%d pieces: height %d\n", pieces, height)
	}

	// Output:
	// 2022 pieces: height 3068
	// 1000000000000 pieces: height 1514285714288
}
