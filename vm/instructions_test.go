package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"corewar/arena"
	"corewar/champion"
	"corewar/mask"
)

func newTestScheduler() *Scheduler {
	return &Scheduler{
		Arena:     arena.New(),
		Champions: map[int]*champion.Champion{1: {ID: 1, LastLiveCycle: -1}},
	}
}

func TestExecLiveSetsChampionAndProcessClocks(t *testing.T) {
	s := newTestScheduler()
	s.Cycle = 7
	p := newProcess(0, 1)

	jumped := execLive(s, p, []OperandDescriptor{{Kind: mask.KindDir, Raw: 1}}, false)
	assert.False(t, jumped)
	assert.Equal(t, int64(7), s.Champions[1].LastLiveCycle)
	assert.Equal(t, int64(7), p.LastLiveCycle)
	assert.Equal(t, int64(1), s.NbrLives)
}

func TestExecLdSetsCarryOnZero(t *testing.T) {
	s := newTestScheduler()
	p := newProcess(0, 1)

	execLd(s, p, []OperandDescriptor{{Kind: mask.KindDir, Raw: 0}, {Kind: mask.KindReg, Raw: 2}}, false)
	assert.Equal(t, int32(0), p.reg(2))
	assert.True(t, p.Carry)

	execLd(s, p, []OperandDescriptor{{Kind: mask.KindDir, Raw: 5}, {Kind: mask.KindReg, Raw: 2}}, false)
	assert.Equal(t, int32(5), p.reg(2))
	assert.False(t, p.Carry)
}

func TestExecStLeavesCarryUnchanged(t *testing.T) {
	s := newTestScheduler()
	p := newProcess(0, 1)
	p.Carry = true
	p.setReg(1, 123)

	execSt(s, p, []OperandDescriptor{{Kind: mask.KindReg, Raw: 1}, {Kind: mask.KindReg, Raw: 2}}, false)
	assert.Equal(t, int32(123), p.reg(2))
	assert.True(t, p.Carry, "st must not touch carry")
}

func TestExecAddSetsCarryOnZeroResult(t *testing.T) {
	s := newTestScheduler()
	p := newProcess(0, 1)
	p.setReg(1, 5)
	p.setReg(2, -5)

	execAdd(s, p, []OperandDescriptor{{Kind: mask.KindReg, Raw: 1}, {Kind: mask.KindReg, Raw: 2}, {Kind: mask.KindReg, Raw: 3}}, false)
	assert.Equal(t, int32(0), p.reg(3))
	assert.True(t, p.Carry)
}

func TestExecZjmpWrapsModuloArenaSize(t *testing.T) {
	s := newTestScheduler()
	p := newProcess(arena.Size-2, 1)
	p.Carry = true

	jumped := execZjmp(s, p, []OperandDescriptor{{Kind: mask.KindDir, Raw: 5}}, false)
	assert.True(t, jumped)
	assert.Equal(t, int32(3), p.PC) // (Size-2 + 5) mod Size
}

func TestExecZjmpFallsThroughWithoutCarry(t *testing.T) {
	s := newTestScheduler()
	p := newProcess(10, 1)
	p.Carry = false

	jumped := execZjmp(s, p, []OperandDescriptor{{Kind: mask.KindDir, Raw: 5}}, false)
	assert.False(t, jumped)
	assert.Equal(t, int32(10), p.PC, "PC must be left for the default advance when no jump taken")
}

func TestExecLdiDoesNotSetCarry(t *testing.T) {
	s := newTestScheduler()
	p := newProcess(100, 1)
	p.Carry = true
	// arena at p.PC + (2+3) is already zero, which would set carry for ld.

	execLdi(s, p, []OperandDescriptor{{Kind: mask.KindDir, Raw: 2}, {Kind: mask.KindDir, Raw: 3}, {Kind: mask.KindReg, Raw: 1}}, false)
	assert.True(t, p.Carry, "ldi must leave carry as the caller left it")
}

func TestExecLldiSetsCarry(t *testing.T) {
	s := newTestScheduler()
	p := newProcess(100, 1)
	p.Carry = false

	execLldi(s, p, []OperandDescriptor{{Kind: mask.KindDir, Raw: 2}, {Kind: mask.KindDir, Raw: 3}, {Kind: mask.KindReg, Raw: 1}}, true)
	assert.True(t, p.Carry, "lldi must set carry from the loaded value")
}

func TestExecForkQueuesChildWithoutAddingItThisCycle(t *testing.T) {
	s := newTestScheduler()
	p := newProcess(50, 1)

	execFork(s, p, []OperandDescriptor{{Kind: mask.KindDir, Raw: 4}}, false)
	assert.Len(t, s.pendingForks, 1)
	assert.Equal(t, int32(54), s.pendingForks[0].PC)
}

func TestExecAffWritesByteToOut(t *testing.T) {
	s := newTestScheduler()
	var buf bytes.Buffer
	s.Out = &buf
	p := newProcess(0, 1)
	p.setReg(1, 'x')

	execAff(s, p, []OperandDescriptor{{Kind: mask.KindReg, Raw: 1}}, false)
	assert.Equal(t, "x", buf.String())
}
