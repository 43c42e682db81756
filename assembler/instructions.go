package assembler

import (
	"fmt"
	"strings"
)

// token is one element of an instruction layout: a field name plus either a
// fixed literal or a slot that consumes the next operand.
type token struct {
	field   string
	literal Operand
	fixed   bool
}

// layout is the ordered field list making up one instruction word.
type layout []token

// parseLayout builds a layout from "field:" / "field:0xNN" notation.
// Layouts are static table entries, so a malformed literal is a programming
// error and panics at package init.
func parseLayout(s string) layout {
	var lay layout
	for _, part := range strings.Fields(s) {
		name, lit, _ := strings.Cut(part, ":")
		t := token{field: name}
		if lit != "" {
			v, err := ParseNumber(lit)
			if err != nil {
				panic("bad layout literal " + part)
			}
			t.literal = Operand{Kind: Immediate, Value: v, Raw: lit}
			t.fixed = true
		}
		lay = append(lay, t)
	}
	return lay
}

// instructions maps each mnemonic to its layout. The opcodes and field
// positions are architecture constants and define binary compatibility;
// the set3=0x08/set2=0x09 numbering is what the hardware uses.
var instructions = map[string]layout{
	"unk.r":    parseLayout("opcode: rd: rs: rt: funct:"),
	"unk.i":    parseLayout("opcode: rd: rs: uimm16:"),
	"addi":     parseLayout("opcode:0x00 rd: rs: simm16:"),
	"set0":     parseLayout("opcode:0x06 rd: rs: uimm16:"),
	"set1":     parseLayout("opcode:0x07 rd: rs: uimm16:"),
	"set3":     parseLayout("opcode:0x08 rd: rs: uimm16:"),
	"set2":     parseLayout("opcode:0x09 rd: rs: uimm16:"),
	"call":     parseLayout("opcode:0x25 jmpop:0x0 rel24:"),
	"jump":     parseLayout("opcode:0x25 jmpop:0x1 rel24:"),
	"alu.r":    parseLayout("opcode:0x3f funct: rd: rs: rt:"),
	"add":      parseLayout("opcode:0x3f rd: rs: rt: funct:0x000"),
	"sub":      parseLayout("opcode:0x3f rd: rs: rt: funct:0x004"),
	"subs":     parseLayout("opcode:0x3f rd: rs: rt: funct:0x005"),
	"alur.0xb": parseLayout("opcode:0x3f rd: rs: rt: funct:0x00b"),
	"b.t":      parseLayout("opcode:0x28 cmpop: rs: rel16:"),
	"b.f":      parseLayout("opcode:0x29 cmpop: rs: rel16:"),
	"b.set":    parseLayout("opcode:0x2a rs: bitsel: rel16:"),
	"b.clr":    parseLayout("opcode:0x2b rs: bitsel: rel16:"),
	"ld.d":     parseLayout("opcode:0x19 rd: rs: rt: off11: twobits:0x2"),
	"st.d":     parseLayout("opcode:0x1b rd: rs: rt: off11: twobits:0x2"),
	"st.q":     parseLayout("opcode:0x1e rd: rs: rt: off11: twobits:"),
	"ret.d":    parseLayout("opcode:0x3f rd: rs: rt: funct:0x02d"),
}

// encode assembles one instruction word and appends it to the context.
// Literal tokens use their fixed value, the rest consume operands left to
// right. Operands beyond what the layout needs are ignored.
func encode(ctx *context, lay layout, operands []Operand) error {
	var word uint32
	next := 0
	for _, t := range lay {
		op := t.literal
		if !t.fixed {
			if next >= len(operands) {
				return fmt.Errorf("%w: want %d, got %d", ErrOperandCount, slots(lay), len(operands))
			}
			op = operands[next]
			next++
		}
		enc, ok := fields[t.field]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, t.field)
		}
		contrib, err := enc(ctx, op)
		if err != nil {
			return fmt.Errorf("field %s: %w", t.field, err)
		}
		word |= contrib
	}
	ctx.emit(word)
	return nil
}

// slots counts how many operands a layout consumes.
func slots(lay layout) int {
	n := 0
	for _, t := range lay {
		if !t.fixed {
			n++
		}
	}
	return n
}
