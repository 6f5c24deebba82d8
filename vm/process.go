package vm

// Process is a live execution context owned by a champion: a program
// counter, 16 general registers, a carry flag, and the liveness
// bookkeeping the scheduler's cycle-to-die check relies on.
//
// Registers are stored 0-indexed in Regs but numbered 1..16 everywhere
// else (spec §3): Regs[0] is register 1, Regs[15] is register 16.
type Process struct {
	PC            int32
	Regs          [16]int32
	Carry         bool
	ChampionID    int
	LastLiveCycle int64 // -1 until this process itself executes `live`

	pending  *Instruction
	cooldown int
}

// newProcess creates the one initial process a champion is loaded with:
// PC at the load offset, every register zero except register 1, which
// holds the negated champion id (spec §4.5, classic convention).
func newProcess(pc int32, championID int) *Process {
	p := &Process{PC: pc, ChampionID: championID, LastLiveCycle: -1}
	p.Regs[0] = -int32(championID)
	return p
}

// fork returns a new Process inheriting p's registers and carry flag,
// starting execution at pc. Per spec §9 the child is a value copy, not a
// shared reference: mutating the parent's registers after a fork never
// affects the child.
func (p *Process) fork(pc int32) *Process {
	return &Process{
		PC:            pc,
		Regs:          p.Regs,
		Carry:         p.Carry,
		ChampionID:    p.ChampionID,
		LastLiveCycle: -1,
	}
}

// reg returns the value of register n (1..16). Callers must validate n
// via the decoder before calling this -- it panics on an out-of-range
// index, since a RegisterIndexError is handled at decode time and never
// reaches execution.
func (p *Process) reg(n int32) int32 {
	return p.Regs[n-1]
}

func (p *Process) setReg(n int32, v int32) {
	p.Regs[n-1] = v
}
