package vm

import (
	"corewar/arena"
	"corewar/mask"
)

// handler executes one already-decoded Instruction against the current
// process and machine state. long is opcodeTable[inst.Op].Long, passed
// in so ld/lld, ldi/lldi, and fork/lfork can share a single body that
// differs only in whether Indirect resolution (and, for ldi/lldi, the
// outer address sum) skips the IDX_MOD reduction.
//
// handler returns true if it already set p.PC to its final value (zjmp,
// when taken); otherwise the scheduler applies the default
// PC += instruction size advance.
//
// Per spec §9 ("operand fetch timing"), every resolve call below reads
// live register/arena state -- nothing was latched at decode time.
type handler func(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool

var handlers = map[Opcode]handler{
	OpLive:  execLive,
	OpLd:    execLd,
	OpSt:    execSt,
	OpAdd:   execAdd,
	OpSub:   execSub,
	OpAnd:   execAnd,
	OpOr:    execOr,
	OpXor:   execXor,
	OpZjmp:  execZjmp,
	OpLdi:   execLdi,
	OpSti:   execSti,
	OpFork:  execFork,
	OpLld:   execLd,
	OpLldi:  execLldi,
	OpLfork: execFork,
	OpAff:   execAff,
}

func wrapPC(v int32) int32 {
	m := v % arena.Size
	if m < 0 {
		m += arena.Size
	}
	return m
}

func idxMod(v int32) int32 {
	m := v % arena.IdxMod
	if m < 0 {
		m += arena.IdxMod
	}
	return m
}

// resolve fetches an operand's current value: a register's content, a
// direct literal, or (for Indirect) a 32-bit arena read at pc+V, IDX_MOD
// reduced unless long is set (spec §4.3).
func (s *Scheduler) resolve(p *Process, op OperandDescriptor, long bool) int32 {
	switch op.Kind {
	case mask.KindReg:
		return p.reg(op.Raw)
	case mask.KindDir:
		return op.Raw
	case mask.KindInd:
		var addr int32
		if long {
			addr = p.PC + op.Raw
		} else {
			addr = p.PC + idxMod(op.Raw)
		}
		return s.Arena.ReadI32(addr)
	default:
		return 0
	}
}

// live: record the named champion id as alive this cycle and bump the
// executing process's own liveness clock (spec §3, §4.3 row 1).
func execLive(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	named := int(s.resolve(p, ops[0], long))
	if champ, ok := s.Champions[named]; ok {
		champ.LastLiveCycle = s.Cycle
	}
	p.LastLiveCycle = s.Cycle
	s.NbrLives++
	return false
}

// ld / lld: load into a register, setting carry.
func execLd(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	value := s.resolve(p, ops[0], long)
	p.setReg(ops[1].Raw, value)
	p.Carry = value == 0
	return false
}

// st: store a register into a register or an arena address. Carry is
// left unchanged (spec §4.3 row 3 does not mention it).
func execSt(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	value := p.reg(ops[0].Raw)
	switch ops[1].Kind {
	case mask.KindReg:
		p.setReg(ops[1].Raw, value)
	case mask.KindInd:
		addr := p.PC + idxMod(ops[1].Raw)
		s.Arena.WriteI32(addr, value, byte(p.ChampionID))
	}
	return false
}

func execAdd(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	result := p.reg(ops[0].Raw) + p.reg(ops[1].Raw)
	p.setReg(ops[2].Raw, result)
	p.Carry = result == 0
	return false
}

func execSub(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	result := p.reg(ops[0].Raw) - p.reg(ops[1].Raw)
	p.setReg(ops[2].Raw, result)
	p.Carry = result == 0
	return false
}

func execAnd(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	result := s.resolve(p, ops[0], false) & s.resolve(p, ops[1], false)
	p.setReg(ops[2].Raw, result)
	p.Carry = result == 0
	return false
}

func execOr(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	result := s.resolve(p, ops[0], false) | s.resolve(p, ops[1], false)
	p.setReg(ops[2].Raw, result)
	p.Carry = result == 0
	return false
}

func execXor(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	result := s.resolve(p, ops[0], false) ^ s.resolve(p, ops[1], false)
	p.setReg(ops[2].Raw, result)
	p.Carry = result == 0
	return false
}

// zjmp: jump relative to the instruction's own PC (not PC+size) when
// carry is set; otherwise fall through to the default advance.
func execZjmp(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	if !p.Carry {
		return false
	}
	p.PC = wrapPC(p.PC + idxMod(ops[0].Raw))
	return true
}

// ldiValue computes the shared ldi/lldi addressing: addr = op1+op2
// (IDX_MOD reduced unless long), target = PC+addr, then reads the
// 32-bit value at target and stores it in the destination register.
func ldiValue(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) int32 {
	sum := s.resolve(p, ops[0], long) + s.resolve(p, ops[1], long)
	if !long {
		sum = idxMod(sum)
	}
	value := s.Arena.ReadI32(p.PC + sum)
	p.setReg(ops[2].Raw, value)
	return value
}

// ldi: does not set carry (spec §4.3 row 10 has no carry mention).
func execLdi(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	ldiValue(s, p, ops, long)
	return false
}

// lldi: as ldi, but does set carry (spec §4.3 row 14).
func execLldi(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	value := ldiValue(s, p, ops, long)
	p.Carry = value == 0
	return false
}

func execSti(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	value := p.reg(ops[0].Raw)
	sum := s.resolve(p, ops[1], long) + s.resolve(p, ops[2], long)
	if !long {
		sum = idxMod(sum)
	}
	addr := p.PC + sum
	s.Arena.WriteI32(addr, value, byte(p.ChampionID))
	return false
}

// fork / lfork: spawn a child at PC+offset. The child is queued and
// appended to the process list only after the current cycle completes
// (spec §4.4 step 3, §8 "fork visibility"), so it never executes in the
// cycle it was created.
func execFork(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	offset := ops[0].Raw
	if !long {
		offset = idxMod(offset)
	}
	child := p.fork(wrapPC(p.PC + offset))
	s.pendingForks = append(s.pendingForks, child)
	return false
}

func execAff(s *Scheduler, p *Process, ops []OperandDescriptor, long bool) bool {
	v := p.reg(ops[0].Raw)
	if s.Out != nil {
		s.Out.Write([]byte{byte(v)})
	}
	return false
}
