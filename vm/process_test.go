package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProcessSeedsNegatedChampionID(t *testing.T) {
	p := newProcess(100, 3)
	assert.Equal(t, int32(100), p.PC)
	assert.Equal(t, int32(-3), p.Regs[0])
	assert.Equal(t, int64(-1), p.LastLiveCycle)
}

func TestForkCopiesRegistersByValue(t *testing.T) {
	parent := newProcess(0, 1)
	parent.setReg(2, 99)
	parent.Carry = true

	child := parent.fork(42)
	assert.Equal(t, int32(42), child.PC)
	assert.Equal(t, int32(99), child.reg(2))
	assert.True(t, child.Carry)

	parent.setReg(2, 5)
	assert.Equal(t, int32(99), child.reg(2), "child must not observe later parent mutations")
}

func TestRegAndSetRegAreOneIndexed(t *testing.T) {
	p := newProcess(0, 1)
	p.setReg(1, 7)
	p.setReg(16, -7)
	assert.Equal(t, int32(7), p.reg(1))
	assert.Equal(t, int32(-7), p.reg(16))
	assert.Equal(t, int32(7), p.Regs[0])
	assert.Equal(t, int32(-7), p.Regs[15])
}
