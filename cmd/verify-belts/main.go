// Command verify-belts re-checks a belts solver output against its input:
// verify-belts input.json output.json. It exits 0 when every constraint
// holds, 2 with one diagnostic line per violation otherwise.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/planfab/planfab/belts"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: verify-belts input.json output.json")
		os.Exit(2)
	}

	p, res, err := load(os.Args[1], os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify-belts: %v\n", err)
		os.Exit(2)
	}

	if fails := belts.Verify(p, res); len(fails) > 0 {
		for _, f := range fails {
			fmt.Fprintf(os.Stderr, "verify-belts: %s\n", f)
		}
		os.Exit(2)
	}

	fmt.Println("verify-belts: OK")
}

func load(inPath, outPath string) (*belts.Problem, *belts.Result, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return nil, nil, err
	}
	defer in.Close()

	p, err := belts.Decode(in)
	if err != nil {
		return nil, nil, err
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		return nil, nil, err
	}
	var res belts.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, nil, fmt.Errorf("parse output: %w", err)
	}

	return p, &res, nil
}
