package disassembler

import "fmt"

// Opcodes, as stored in bits 31..26 of every instruction word.
const (
	opAddi = 0x00
	opSet0 = 0x06
	opSet1 = 0x07
	opSet3 = 0x08
	opSet2 = 0x09
	opLdd  = 0x19
	opStd  = 0x1B
	opStq  = 0x1E
	opJump = 0x25
	opBt   = 0x28
	opBf   = 0x29
	opBset = 0x2A
	opBclr = 0x2B
	opAlu  = 0x3F
)

// ALU function codes, stored in the low 11 bits of opcode 0x3f words.
const (
	functAdd  = 0x000
	functSub  = 0x004
	functSubs = 0x005
	functAluB = 0x00B
	functRetd = 0x02D
)

func opcodeOf(w uint32) uint32 { return w >> 26 }
func rsOf(w uint32) uint32     { return w >> 21 & 31 }
func rdOf(w uint32) uint32     { return w >> 16 & 31 }
func rtOf(w uint32) uint32     { return w >> 11 & 31 }
func cmpopOf(w uint32) uint32  { return w >> 16 & 31 }
func bitselOf(w uint32) uint32 { return w >> 16 & 31 }
func imm16Of(w uint32) uint32  { return w & 0xFFFF }
func off11Of(w uint32) uint32  { return w & 0x7FF }
func functOf(w uint32) uint32  { return w & 0x7FF }

// rel16Of sign-extends the 16-bit branch displacement, in words.
func rel16Of(w uint32) int32 { return int32(int16(w)) }

// rel24Of sign-extends the low 24 bits, in words.
func rel24Of(w uint32) int32 { return int32(w<<8) >> 8 }

// decoded is one instruction word split into renderable parts. Branch words
// carry the reconstructed target address; the label operand is appended at
// render time once the target has a name.
type decoded struct {
	mnemonic string
	operands []string
	target   int64
	branch   bool
}

// decodeWord picks the source form for one word. Words that no mnemonic can
// reproduce fall back to the unk.i escape, which covers all 32 bits, so
// decoding is total.
func decodeWord(w uint32, addr uint32) decoded {
	rd := fmt.Sprintf("r%d", rdOf(w))
	rs := fmt.Sprintf("r%d", rsOf(w))
	rt := fmt.Sprintf("r%d", rtOf(w))

	switch opcodeOf(w) {
	case opAddi:
		return decoded{mnemonic: "addi", operands: []string{rd, rs, fmt.Sprintf("%d", int16(w))}}

	case opSet0, opSet1, opSet3, opSet2:
		var mn string
		switch opcodeOf(w) {
		case opSet0:
			mn = "set0"
		case opSet1:
			mn = "set1"
		case opSet3:
			mn = "set3"
		default:
			mn = "set2"
		}
		return decoded{mnemonic: mn, operands: []string{rd, rs, fmt.Sprintf("0x%x", imm16Of(w))}}

	case opJump:
		// Bits 25..24 are unreachable by call/jump encodings.
		if w>>24&3 != 0 {
			return escape(w)
		}
		// Bit 0 is the jump opcode ORed into the stored displacement, so it
		// is masked back out before reconstructing the target.
		rel := rel24Of(w) &^ 1
		mn := "call"
		if w&1 != 0 {
			mn = "jump"
		}
		return decoded{mnemonic: mn, target: int64(addr) + int64(rel)*4, branch: true}

	case opBt, opBf:
		mn := "b.t"
		if opcodeOf(w) == opBf {
			mn = "b.f"
		}
		return decoded{
			mnemonic: mn,
			operands: []string{fmt.Sprintf("%d", cmpopOf(w)), rs},
			target:   int64(addr) + int64(rel16Of(w))*4,
			branch:   true,
		}

	case opBset, opBclr:
		mn := "b.set"
		if opcodeOf(w) == opBclr {
			mn = "b.clr"
		}
		return decoded{
			mnemonic: mn,
			operands: []string{rs, fmt.Sprintf("%d", bitselOf(w))},
			target:   int64(addr) + int64(rel16Of(w))*4,
			branch:   true,
		}

	case opLdd, opStd:
		// The offset field always carries bit 1 from the fixed twobits
		// part; a word without it cannot come from these mnemonics.
		if w>>1&1 == 0 {
			return escape(w)
		}
		mn := "ld.d"
		if opcodeOf(w) == opStd {
			mn = "st.d"
		}
		off := off11Of(w) &^ 2
		return decoded{mnemonic: mn, operands: []string{rd, rs, rt, fmt.Sprintf("%d", off)}}

	case opStq:
		return decoded{
			mnemonic: "st.q",
			operands: []string{rd, rs, rt, fmt.Sprintf("%d", off11Of(w)), fmt.Sprintf("%d", w&3)},
		}

	case opAlu:
		switch functOf(w) {
		case functAdd:
			return decoded{mnemonic: "add", operands: []string{rd, rs, rt}}
		case functSub:
			return decoded{mnemonic: "sub", operands: []string{rd, rs, rt}}
		case functSubs:
			return decoded{mnemonic: "subs", operands: []string{rd, rs, rt}}
		case functAluB:
			return decoded{mnemonic: "alur.0xb", operands: []string{rd, rs, rt}}
		case functRetd:
			return decoded{mnemonic: "ret.d", operands: []string{rd, rs, rt}}
		default:
			return decoded{
				mnemonic: "alu.r",
				operands: []string{fmt.Sprintf("0x%x", functOf(w)), rd, rs, rt},
			}
		}
	}
	return escape(w)
}

// escape renders a word through the unk.i catch-all. Its four fields cover
// every bit, so any value survives a disassemble/assemble round trip.
func escape(w uint32) decoded {
	return decoded{
		mnemonic: "unk.i",
		operands: []string{
			fmt.Sprintf("0x%x", opcodeOf(w)),
			fmt.Sprintf("r%d", rdOf(w)),
			fmt.Sprintf("r%d", rsOf(w)),
			fmt.Sprintf("0x%x", imm16Of(w)),
		},
	}
}
