package vm

import (
	"corewar/arena"
	"corewar/mask"
)

// OperandDescriptor is a decoded-but-unresolved operand: it records how
// to fetch the operand's value, not the value itself. Per spec §9
// ("operand fetch timing"), the actual register/arena read happens at
// EXECUTE, against whatever state the arena holds at that moment -- not
// at decode time.
type OperandDescriptor struct {
	Kind mask.OperandKind
	// Raw is the register index (1..16) for KindReg, the literal value
	// for KindDir, or the encoded displacement V for KindInd.
	Raw int32
}

// Instruction is a decoded instruction: an opcode, its operand
// descriptors, and the byte size / cycle cost the scheduler uses to
// drive cooldown and PC advancement.
type Instruction struct {
	Op       Opcode
	Operands []OperandDescriptor
	Size     int
	Cost     int
}

// invalidInstruction is the "no side effects" sentinel every decode
// failure and register-index failure resolves to (spec §4.2 step 1 and
// step 3, §7 DecodeError/RegisterIndexError): Op is left 0, which no
// handler ever dispatches on.
func invalidInstruction(size, cost int) Instruction {
	if size < 1 {
		size = 1
	}
	if cost < 1 {
		cost = 1
	}
	return Instruction{Size: size, Cost: cost}
}

// Decode reads the instruction at pc. Decode failures are not reported
// as errors -- per spec §7 they are defined behavior: the caller gets
// back a minimal-size, fixed-cost no-op and keeps running.
func Decode(a *arena.Arena, pc int32) Instruction {
	opByte := a.ReadByte(pc)
	if opByte < 1 || opByte > 16 {
		return invalidInstruction(1, 1)
	}
	op := Opcode(opByte)
	def := opcodeTable[op]

	size := 1
	var encoding byte
	if def.HasEncodingByte {
		encoding = a.ReadByte(pc + 1)
		size++
	}

	operands := make([]OperandDescriptor, 0, len(def.Operands))
	for i, spec := range def.Operands {
		kind := spec.Fixed
		if def.HasEncodingByte {
			kind = mask.OperandField(encoding, i+1)
			if spec.Allowed&(1<<uint8(kind)) == 0 {
				return invalidInstruction(size, def.Cycles)
			}
		}

		var raw int32
		switch kind {
		case mask.KindReg:
			reg := a.ReadByte(pc + int32(size))
			size++
			if reg < 1 || reg > 16 {
				return invalidInstruction(size, def.Cycles)
			}
			raw = int32(reg)
		case mask.KindDir:
			raw = readSignedN(a, pc+int32(size), def.DirSize)
			size += def.DirSize
		case mask.KindInd:
			raw = readSignedN(a, pc+int32(size), 2)
			size += 2
		default:
			return invalidInstruction(size, def.Cycles)
		}

		operands = append(operands, OperandDescriptor{Kind: kind, Raw: raw})
	}

	return Instruction{Op: op, Operands: operands, Size: size, Cost: def.Cycles}
}

// readSignedN reads n (2 or 4) big-endian bytes starting at addr and
// sign-extends the result to int32.
func readSignedN(a *arena.Arena, addr int32, n int) int32 {
	var v int32
	for i := 0; i < n; i++ {
		v = v<<8 | int32(a.ReadByte(addr+int32(i)))
	}
	shift := uint(32 - 8*n)
	return (v << shift) >> shift
}
