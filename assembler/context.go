package assembler

import (
	"encoding/binary"
	"fmt"
	"maps"
)

// context carries the mutable state of one assembly pass: the load address,
// the label table and the emitted code. Each pass gets a fresh one; the
// label table is always copied from the seed, never aliased.
type context struct {
	base    uint32
	labels  map[string]uint32
	code    []byte
	resolve bool // second pass: label references must resolve
}

func newContext(base uint32, seed map[string]uint32, resolve bool) *context {
	ctx := &context{
		base:    base,
		labels:  make(map[string]uint32, len(seed)),
		code:    []byte{},
		resolve: resolve,
	}
	maps.Copy(ctx.labels, seed)
	return ctx
}

// address is the load address of the next instruction to be emitted.
func (ctx *context) address() uint32 {
	return ctx.base + uint32(len(ctx.code))
}

// emit appends one instruction word as 4 big-endian bytes.
func (ctx *context) emit(word uint32) {
	ctx.code = binary.BigEndian.AppendUint32(ctx.code, word)
}

// define binds a label to the current address. Declaring the same label
// again at the same address is a no-op; a different address is an error.
func (ctx *context) define(name string) error {
	addr, ok := ctx.labels[name]
	if !ok {
		ctx.labels[name] = ctx.address()
		return nil
	}
	if addr != ctx.address() {
		return fmt.Errorf("%w: %q is 0x%x, cannot rebind to 0x%x", ErrLabelRedefinition, name, addr, ctx.address())
	}
	return nil
}
