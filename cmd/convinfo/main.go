// Command convinfo prints the buffer geometry of a 2D convolution:
// working sizes, extraction windows, and output shapes for both
// boundary modes.
//
// Usage:
//
//	convinfo [flags]
//
// Examples:
//
//	convinfo -rows 28 -cols 28 -frows 5 -fcols 5
//	convinfo -rows 64 -cols 63 -frows 3 -fcols 3 -padlastdim
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-conv2d"
)

func main() {
	rows := flag.Int("rows", 8, "input row count")
	cols := flag.Int("cols", 8, "input column count")
	frows := flag.Int("frows", 3, "filter row count")
	fcols := flag.Int("fcols", 3, "filter column count")
	padLastDim := flag.Bool("padlastdim", false, "append one zero working column (even-width transform backends)")
	flag.Parse()

	if *rows < 1 || *cols < 1 || *frows < 1 || *fcols < 1 {
		fmt.Fprintln(os.Stderr, "convinfo: all dimensions must be positive")
		os.Exit(1)
	}

	extraCol := 0
	if *padLastDim {
		extraCol = 1
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "mode\twork size\tregion of interest\toutput shape\n")

	if *frows <= *rows && *fcols <= *cols {
		fmt.Fprintf(w, "valid\t%dx%d\t(%d,%d)..(%d,%d)\t%dx%d\n",
			*rows, *cols+extraCol,
			*frows-1, *fcols-1, *rows-1, *cols-1,
			conv2d.ValidOutputRows(*rows, *frows),
			conv2d.ValidOutputCols(*cols, *fcols))
	} else {
		fmt.Fprintf(w, "valid\t-\t-\tfilter exceeds input\n")
	}

	workRows := *rows + 2*(*frows-1)
	workCols := *cols + 2*(*fcols-1) + extraCol
	fmt.Fprintf(w, "full\t%dx%d\t(%d,%d)..(%d,%d)\t%dx%d\n",
		workRows, workCols,
		*frows-1, *fcols-1,
		2*(*frows-1)+*rows-1, 2*(*fcols-1)+*cols-1,
		conv2d.FullOutputRows(*rows, *frows),
		conv2d.FullOutputCols(*cols, *fcols))

	w.Flush()
}
