package assembler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OperandKind discriminates the forms an operand can take after parsing.
type OperandKind int

const (
	// Register is an operand of the form r0..r31.
	Register OperandKind = iota
	// Immediate is a numeric literal, decimal or 0x-prefixed hex.
	Immediate
	// LabelRef is a name resolved against the label table.
	LabelRef
)

// Operand is one comma-separated argument, classified up front so the field
// encoders never re-parse raw text.
type Operand struct {
	Kind  OperandKind
	Value int64  // register number or immediate value
	Name  string // label name for LabelRef
	Raw   string
}

// parseOperand classifies a trimmed, non-empty operand string.
// Anything that is neither a register nor a number is a label reference.
func parseOperand(s string) (Operand, error) {
	if isRegister(s) {
		n, err := strconv.ParseInt(s[1:], 10, 64)
		if err != nil {
			// all-digit suffix, so only overflow gets here
			return Operand{}, fmt.Errorf("%w: register %q", ErrFieldRange, s)
		}
		return Operand{Kind: Register, Value: n, Raw: s}, nil
	}
	if c := s[0]; c == '-' || (c >= '0' && c <= '9') {
		v, err := ParseNumber(s)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: Immediate, Value: v, Raw: s}, nil
	}
	return Operand{Kind: LabelRef, Name: s, Raw: s}, nil
}

// isRegister reports whether s is "r" followed by decimal digits.
func isRegister(s string) bool {
	if len(s) < 2 || s[0] != 'r' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ParseNumber parses a decimal or 0x-prefixed hexadecimal literal with an
// optional leading minus. Unprefixed digits are always decimal.
func ParseNumber(s string) (int64, error) {
	t := s
	sign := int64(1)
	if strings.HasPrefix(t, "-") {
		sign = -1
		t = t[1:]
	}
	base := 10
	if len(t) > 2 && (t[:2] == "0x" || t[:2] == "0X") {
		base = 16
		t = t[2:]
	}
	v, err := strconv.ParseUint(t, base, 63)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrFieldRange, s)
		}
		return 0, fmt.Errorf("%w: %q is not a number", ErrOperandFormat, s)
	}
	return sign * int64(v), nil
}
