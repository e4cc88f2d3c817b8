// Command reinfer infers a regular expression from an example file and
// prints the result, mirroring main.cpp's CLI contract: a file path plus
// the five operator costs and a cost ceiling, all positional.
package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/coregx/reinfer"
	"github.com/coregx/reinfer/internal/inputfile"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <file> <costAlpha> <costQuestion> <costStar> <costConcat> <costOr> <maxCost>\n", os.Args[0])
}

func main() {
	if len(os.Args) != 8 {
		usage()
		os.Exit(1)
	}

	costFunc, maxCost, err := parseCosts(os.Args[2:8])
	if err != nil {
		fmt.Fprintln(os.Stderr, "reinfer:", err)
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "reinfer:", err)
		os.Exit(1)
	}
	pos, neg, err := inputfile.Read(f)
	f.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "reinfer:", err)
		os.Exit(1)
	}

	cfg := reinfer.DefaultConfig()
	cfg.CostFunc = costFunc
	cfg.MaxCost = maxCost

	res, err := reinfer.Infer(pos, neg, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "reinfer:", err)
		os.Exit(1)
	}

	verify(res.RE, pos, neg)

	fmt.Printf("RE: %q\n", res.RE)
	fmt.Printf("Cost: %d\n", res.Cost)
}

// parseCosts reads the six positional short-integer arguments (each
// 0 < n <= SHRT_MAX, matching main.cpp's validation) into a CostFunc array
// and a MaxCost ceiling.
func parseCosts(args []string) ([5]uint16, uint16, error) {
	var costFunc [5]uint16
	var vals [6]uint16
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return costFunc, 0, fmt.Errorf("argument %q is not an integer", arg)
		}
		if n <= 0 || n > math.MaxInt16 {
			return costFunc, 0, fmt.Errorf("argument %q must be in (0, %d]", arg, math.MaxInt16)
		}
		vals[i] = uint16(n)
	}
	copy(costFunc[:], vals[:5])
	return costFunc, vals[5], nil
}

// verify re-checks the inferred regex against every example, matching
// main.cpp's post-hoc sanity pass: mismatches are printed as warnings,
// never a hard failure.
func verify(re string, pos, neg []string) {
	if re == "not_found" {
		return
	}
	for _, w := range pos {
		if !matches(re, w) {
			fmt.Fprintf(os.Stderr, "warning: %q should accept %q but does not\n", re, w)
		}
	}
	for _, w := range neg {
		if matches(re, w) {
			fmt.Fprintf(os.Stderr, "warning: %q should reject %q but accepts it\n", re, w)
		}
	}
}
