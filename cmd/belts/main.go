// Command belts is the bounded-flow conveyor solver: it reads a JSON
// problem document on stdin and writes a JSON solution document on stdout.
// Unsatisfiable lower bounds are a successful run with an "infeasible"
// certificate; only malformed input or an internal fault exits non-zero.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/planfab/planfab/belts"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "belts: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	p, err := belts.Decode(os.Stdin)
	if err != nil {
		return err
	}

	res, err := belts.Solve(context.Background(), p)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}
