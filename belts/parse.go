package belts

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads a JSON problem document and validates it.
func Decode(r io.Reader) (*Problem, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("belts: read input: %w", err)
	}

	var p Problem
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("belts: parse input: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks the problem invariants in declaration order.
func (p *Problem) Validate() error {
	ids := make(map[string]bool, len(p.Nodes))
	haveSink := false
	for _, n := range p.Nodes {
		if ids[n.ID] {
			return fmt.Errorf("node %q: %w", n.ID, ErrDuplicateNode)
		}
		ids[n.ID] = true

		switch n.Role {
		case RoleSource, RoleInternal, "":
		case RoleSink:
			haveSink = true
		default:
			return fmt.Errorf("node %q role %q: %w", n.ID, n.Role, ErrBadRole)
		}
		if n.Cap != nil && *n.Cap < 0 {
			return fmt.Errorf("node %q: %w", n.ID, ErrBadCap)
		}
	}
	if !haveSink {
		return ErrNoSink
	}

	for i, e := range p.Edges {
		if !ids[e.From] {
			return fmt.Errorf("edge %d %q→%q: from: %w", i, e.From, e.To, ErrUnknownNode)
		}
		if !ids[e.To] {
			return fmt.Errorf("edge %d %q→%q: to: %w", i, e.From, e.To, ErrUnknownNode)
		}
		if e.Lo < 0 || e.Hi < e.Lo {
			return fmt.Errorf("edge %d %q→%q: %w", i, e.From, e.To, ErrBadBounds)
		}
	}

	return nil
}
