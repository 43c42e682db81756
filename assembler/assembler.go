// Package assembler turns line-oriented source for a fixed-width 32-bit
// instruction set into big-endian machine code. Every instruction is one
// word, so two passes are enough: the first binds each label to its final
// address, the second emits bytes with all relative offsets resolved.
package assembler

import (
	"fmt"
	"maps"
	"strings"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	labels map[string]uint32
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		labels: make(map[string]uint32),
	}
}

// Line is one source line that survives trimming and comment removal.
type Line struct {
	Number int    // 1-based position in the original source
	Text   string // trimmed text
}

// Lines splits source into the lines the assembler will process, dropping
// blanks and # comments.
func Lines(src string) []Line {
	var out []Line
	for i, raw := range strings.Split(src, "\n") {
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		out = append(out, Line{Number: i + 1, Text: text})
	}
	return out
}

// statement is a parsed line: the mnemonic plus its classified operands.
type statement struct {
	line     Line
	mnemonic string
	operands []Operand
}

// parseSource classifies every line up front so both passes work from the
// same parsed form.
func parseSource(src string) ([]statement, error) {
	var stmts []statement
	for _, ln := range Lines(src) {
		mnemonic := ln.Text
		rest := ""
		if i := strings.IndexAny(ln.Text, " \t"); i >= 0 {
			mnemonic = ln.Text[:i]
			rest = ln.Text[i+1:]
		}
		st := statement{line: ln, mnemonic: mnemonic}
		if strings.TrimSpace(rest) != "" {
			for _, raw := range strings.Split(rest, ",") {
				raw = strings.TrimSpace(raw)
				if raw == "" {
					continue
				}
				op, err := parseOperand(raw)
				if err != nil {
					return nil, lineError(ln, err)
				}
				st.operands = append(st.operands, op)
			}
		}
		stmts = append(stmts, st)
	}
	return stmts, nil
}

// Assemble takes assembly source and returns the machine code that would
// load at base. The result is non-nil on success, even when no line emits
// code. On success, Labels reports the resolved label table.
func (asm *Assembler) Assemble(src string, base uint32) ([]byte, error) {
	stmts, err := parseSource(src)
	if err != nil {
		return nil, err
	}

	// Pass 1 exists solely to bind labels. Instruction size is fixed, so
	// the addresses it finds are final.
	first := newContext(base, nil, false)
	if err := runPass(first, stmts); err != nil {
		return nil, err
	}

	// Pass 2 re-encodes everything against the complete label table.
	second := newContext(base, first.labels, true)
	if err := runPass(second, stmts); err != nil {
		return nil, err
	}

	asm.labels = second.labels
	return second.code, nil
}

// runPass feeds every statement through the instruction table in order.
func runPass(ctx *context, stmts []statement) error {
	for _, st := range stmts {
		if st.mnemonic == "lbl" {
			if err := declareLabel(ctx, st.operands); err != nil {
				return lineError(st.line, err)
			}
			continue
		}
		lay, ok := instructions[st.mnemonic]
		if !ok {
			return lineError(st.line, fmt.Errorf("%w: %q", ErrUnknownMnemonic, st.mnemonic))
		}
		if err := encode(ctx, lay, st.operands); err != nil {
			return lineError(st.line, err)
		}
	}
	return nil
}

// declareLabel handles the lbl pseudo-instruction. It emits nothing.
func declareLabel(ctx *context, operands []Operand) error {
	if len(operands) < 1 {
		return fmt.Errorf("%w: lbl needs a name", ErrOperandCount)
	}
	op := operands[0]
	if op.Kind != LabelRef {
		return fmt.Errorf("%w: %q is not a label name", ErrOperandFormat, op.Raw)
	}
	return ctx.define(op.Name)
}

// Labels returns a copy of the label table from the last successful
// Assemble call.
func (asm *Assembler) Labels() map[string]uint32 {
	out := make(map[string]uint32, len(asm.labels))
	maps.Copy(out, asm.labels)
	return out
}

// lineError ties an assembly failure to its source line.
func lineError(ln Line, err error) error {
	return fmt.Errorf("line %d (%s): %w", ln.Number, ln.Text, err)
}
