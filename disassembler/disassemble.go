// Package disassembler renders machine code for the fixed-width 32-bit
// instruction set back into assembly source. Decoding is total: every word
// becomes exactly one line, and assembling the output at the same base
// address reproduces the input bytes.
package disassembler

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Disassemble performs a multi-stage disassembly of code loaded at base.
func Disassemble(code []byte, base uint32) (string, error) {
	if len(code)%4 != 0 {
		return "", fmt.Errorf("code length %d is not a multiple of the instruction size", len(code))
	}

	// Stage 1: linear decode, one word per instruction.
	words := make([]uint32, len(code)/4)
	insts := make([]decoded, len(words))
	for i := range words {
		words[i] = binary.BigEndian.Uint32(code[i*4:])
		insts[i] = decodeWord(words[i], base+uint32(i*4))
	}

	// Stage 2: name branch targets. A target can sit anywhere on the word
	// grid from the first instruction to just past the last one; branches
	// leaving that window have no address to hang a label on and fall back
	// to the escape form.
	end := int64(base) + int64(len(code))
	labels := make(map[int64]string)
	for i, d := range insts {
		if !d.branch {
			continue
		}
		if d.target < int64(base) || d.target > end {
			insts[i] = escape(words[i])
			continue
		}
		labels[d.target] = fmt.Sprintf("loc_%x", d.target)
	}

	// Stage 3: render, interleaving label declarations at their addresses.
	var out strings.Builder
	for i, d := range insts {
		addr := int64(base) + int64(i*4)
		if name, ok := labels[addr]; ok {
			fmt.Fprintf(&out, "lbl %s\n", name)
		}
		ops := d.operands
		if d.branch {
			ops = append(ops, labels[d.target])
		}
		fmt.Fprintf(&out, "    %-8s %s\n", d.mnemonic, strings.Join(ops, ", "))
	}
	if name, ok := labels[end]; ok {
		fmt.Fprintf(&out, "lbl %s\n", name)
	}
	return out.String(), nil
}
