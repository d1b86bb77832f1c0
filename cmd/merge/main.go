// Command merge combines several log sources, directories of sealed
// block files or newline-delimited JSON logs, into a single time-ordered
// directory of block files with sequence numbers reset from 0.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// stringList collects repeated occurrences of a flag into a slice,
// implementing flag.Value the way a repeatable CLI flag has to in the
// standard flag package (it has no native multi-value flag type).
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)

	return nil
}

func main() {
	var inputs stringList

	flag.Var(&inputs, "input", "input directory of block files, or a newline-delimited JSON log (repeatable)")
	output := flag.String("output", "", "output directory for merged block files")
	blockSize := flag.Int("block-size", 10_000, "number of records per output block")

	flag.Parse()

	if *output == "" || len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: merge --output DIR --input PATH [--input PATH ...] [--block-size N]")
		os.Exit(1)
	}

	if *blockSize <= 0 {
		fmt.Fprintln(os.Stderr, "merge: --block-size must be positive")
		os.Exit(1)
	}

	if err := merge(inputs, *output, *blockSize); err != nil {
		fmt.Fprintf(os.Stderr, "merge: %v\n", err)
		os.Exit(2)
	}
}
