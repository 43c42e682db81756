package preprocessor

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"strings"

	"github.com/Urethramancer/irisc/assembler"
)

// Params maps template variable names to their values.
type Params map[string]any

// Sweep is one integer parameter together with every value it takes.
type Sweep struct {
	Name   string
	Values []int64
}

// ParseIntParam parses key=list, where list is a comma-separated mix of
// numbers, inclusive lo-hi ranges and rand8/rand16/rand32/rand64 draws.
func ParseIntParam(s string) (Sweep, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" || list == "" {
		return Sweep{}, fmt.Errorf("parameter %q is not key=value", s)
	}
	sw := Sweep{Name: name}
	for _, item := range strings.Split(list, ",") {
		values, err := parseItem(strings.TrimSpace(item))
		if err != nil {
			return Sweep{}, fmt.Errorf("parameter %s: %w", name, err)
		}
		sw.Values = append(sw.Values, values...)
	}
	return sw, nil
}

// ParseStrParam parses key=value with the value taken verbatim.
func ParseStrParam(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("parameter %q is not key=value", s)
	}
	return name, value, nil
}

// parseItem expands one element of a value list.
func parseItem(s string) ([]int64, error) {
	switch s {
	case "rand8":
		return []int64{rand.Int64N(1 << 8)}, nil
	case "rand16":
		return []int64{rand.Int64N(1 << 16)}, nil
	case "rand32":
		return []int64{rand.Int64N(1 << 32)}, nil
	case "rand64":
		return []int64{int64(rand.Uint64())}, nil
	}
	if lo, hi, ok := splitRange(s); ok {
		from, err := assembler.ParseNumber(lo)
		if err != nil {
			return nil, err
		}
		to, err := assembler.ParseNumber(hi)
		if err != nil {
			return nil, err
		}
		var out []int64
		for v := from; v <= to; v++ {
			out = append(out, v)
		}
		return out, nil
	}
	v, err := assembler.ParseNumber(s)
	if err != nil {
		return nil, err
	}
	return []int64{v}, nil
}

// splitRange splits "lo-hi" on the first interior dash, leaving a leading
// minus alone so plain negative numbers are not mistaken for ranges.
func splitRange(s string) (string, string, bool) {
	if len(s) < 3 {
		return "", "", false
	}
	i := strings.Index(s[1:], "-")
	if i < 0 {
		return "", "", false
	}
	return s[:i+1], s[i+2:], true
}

// Combinations expands sweeps into the cartesian product of their values,
// the first sweep varying slowest. No sweeps yields a single empty Params.
func Combinations(sweeps []Sweep) []Params {
	combos := []Params{{}}
	for _, sw := range sweeps {
		next := make([]Params, 0, len(combos)*len(sw.Values))
		for _, c := range combos {
			for _, v := range sw.Values {
				p := make(Params, len(c)+1)
				maps.Copy(p, c)
				p[sw.Name] = v
				next = append(next, p)
			}
		}
		combos = next
	}
	return combos
}
