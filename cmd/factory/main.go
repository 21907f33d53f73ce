// Command factory is the steady-state factory planner: it reads a JSON
// problem document on stdin and writes a JSON solution document on stdout.
// Infeasible targets are a successful run with an "infeasible" document;
// only malformed input or an internal solver fault exits non-zero.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/planfab/planfab/factory"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "factory: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	p, err := factory.Decode(os.Stdin)
	if err != nil {
		return err
	}

	res, err := factory.Solve(p)
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
