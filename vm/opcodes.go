package vm

import "corewar/mask"

// Opcode identifies one of the 16 valid instruction codes (spec §3: 1..16).
type Opcode byte

const (
	OpLive  Opcode = iota + 1 // live
	OpLd                      // ld
	OpSt                      // st
	OpAdd                     // add
	OpSub                     // sub
	OpAnd                     // and
	OpOr                      // or
	OpXor                     // xor
	OpZjmp                    // zjmp
	OpLdi                     // ldi
	OpSti                     // sti
	OpFork                    // fork
	OpLld                     // lld
	OpLldi                    // lldi
	OpLfork                   // lfork
	OpAff                     // aff
)

// operandSpec describes one operand slot. Fixed holds the single
// permitted kind for an opcode with no encoding byte (live, zjmp, fork,
// lfork, aff); Allowed is the bitmask of kinds accepted at that slot for
// an opcode that does carry an encoding byte.
type operandSpec struct {
	Fixed   mask.OperandKind
	Allowed uint8
}

func allow(kinds ...mask.OperandKind) uint8 {
	var m uint8
	for _, k := range kinds {
		m |= 1 << uint8(k)
	}
	return m
}

// opcodeDef is one row of the instruction table -- the generalization of
// the teacher's `Opcodes map[byte]Opcode` (cpu/opcodes.go): a 256-entry
// NES dispatch table keyed by raw byte and carrying one AddressingMode
// per opcode becomes a 16-entry table keyed by Opcode, carrying an
// operand-kind bitmask per slot instead of a single mode, since a Core
// War operand's type is chosen by the caller (the encoding byte) rather
// than baked into the opcode byte itself.
type opcodeDef struct {
	Name            string
	Cycles          int
	HasEncodingByte bool
	DirSize         int // 2 or 4, meaningless when len(Operands)==0
	Long            bool
	Operands        []operandSpec
}

var opcodeTable = map[Opcode]opcodeDef{
	OpLive: {
		Name: "live", Cycles: 10, DirSize: 4,
		Operands: []operandSpec{{Fixed: mask.KindDir}},
	},
	OpLd: {
		Name: "ld", Cycles: 5, HasEncodingByte: true, DirSize: 4,
		Operands: []operandSpec{
			{Allowed: allow(mask.KindDir, mask.KindInd)},
			{Allowed: allow(mask.KindReg)},
		},
	},
	OpSt: {
		Name: "st", Cycles: 5, HasEncodingByte: true, DirSize: 4,
		Operands: []operandSpec{
			{Allowed: allow(mask.KindReg)},
			{Allowed: allow(mask.KindReg, mask.KindInd)},
		},
	},
	OpAdd: {
		Name: "add", Cycles: 10, HasEncodingByte: true, DirSize: 4,
		Operands: []operandSpec{
			{Allowed: allow(mask.KindReg)},
			{Allowed: allow(mask.KindReg)},
			{Allowed: allow(mask.KindReg)},
		},
	},
	OpSub: {
		Name: "sub", Cycles: 10, HasEncodingByte: true, DirSize: 4,
		Operands: []operandSpec{
			{Allowed: allow(mask.KindReg)},
			{Allowed: allow(mask.KindReg)},
			{Allowed: allow(mask.KindReg)},
		},
	},
	OpAnd: {
		Name: "and", Cycles: 6, HasEncodingByte: true, DirSize: 4,
		Operands: []operandSpec{
			{Allowed: allow(mask.KindReg, mask.KindDir, mask.KindInd)},
			{Allowed: allow(mask.KindReg, mask.KindDir, mask.KindInd)},
			{Allowed: allow(mask.KindReg)},
		},
	},
	OpOr: {
		Name: "or", Cycles: 6, HasEncodingByte: true, DirSize: 4,
		Operands: []operandSpec{
			{Allowed: allow(mask.KindReg, mask.KindDir, mask.KindInd)},
			{Allowed: allow(mask.KindReg, mask.KindDir, mask.KindInd)},
			{Allowed: allow(mask.KindReg)},
		},
	},
	OpXor: {
		Name: "xor", Cycles: 6, HasEncodingByte: true, DirSize: 4,
		Operands: []operandSpec{
			{Allowed: allow(mask.KindReg, mask.KindDir, mask.KindInd)},
			{Allowed: allow(mask.KindReg, mask.KindDir, mask.KindInd)},
			{Allowed: allow(mask.KindReg)},
		},
	},
	OpZjmp: {
		Name: "zjmp", Cycles: 20, DirSize: 2,
		Operands: []operandSpec{{Fixed: mask.KindDir}},
	},
	OpLdi: {
		Name: "ldi", Cycles: 25, HasEncodingByte: true, DirSize: 2,
		Operands: []operandSpec{
			{Allowed: allow(mask.KindReg, mask.KindDir, mask.KindInd)},
			{Allowed: allow(mask.KindReg, mask.KindDir)},
			{Allowed: allow(mask.KindReg)},
		},
	},
	OpSti: {
		Name: "sti", Cycles: 25, HasEncodingByte: true, DirSize: 2,
		Operands: []operandSpec{
			{Allowed: allow(mask.KindReg)},
			{Allowed: allow(mask.KindReg, mask.KindDir, mask.KindInd)},
			{Allowed: allow(mask.KindReg, mask.KindDir)},
		},
	},
	OpFork: {
		Name: "fork", Cycles: 800, DirSize: 2,
		Operands: []operandSpec{{Fixed: mask.KindDir}},
	},
	OpLld: {
		Name: "lld", Cycles: 10, HasEncodingByte: true, DirSize: 4, Long: true,
		Operands: []operandSpec{
			{Allowed: allow(mask.KindDir, mask.KindInd)},
			{Allowed: allow(mask.KindReg)},
		},
	},
	OpLldi: {
		Name: "lldi", Cycles: 50, HasEncodingByte: true, DirSize: 2, Long: true,
		Operands: []operandSpec{
			{Allowed: allow(mask.KindReg, mask.KindDir, mask.KindInd)},
			{Allowed: allow(mask.KindReg, mask.KindDir)},
			{Allowed: allow(mask.KindReg)},
		},
	},
	OpLfork: {
		Name: "lfork", Cycles: 1000, DirSize: 2, Long: true,
		Operands: []operandSpec{{Fixed: mask.KindDir}},
	},
	OpAff: {
		Name: "aff", Cycles: 2,
		Operands: []operandSpec{{Fixed: mask.KindReg}},
	},
}

// Name returns the opcode's mnemonic, or "invalid" for 0 (the decoder's
// no-op sentinel).
func (op Opcode) Name() string {
	if def, ok := opcodeTable[op]; ok {
		return def.Name
	}
	return "invalid"
}
