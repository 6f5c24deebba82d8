package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeNames(t *testing.T) {
	assert.Equal(t, "live", OpLive.Name())
	assert.Equal(t, "ld", OpLd.Name())
	assert.Equal(t, "lldi", OpLldi.Name())
	assert.Equal(t, "aff", OpAff.Name())
	assert.Equal(t, "invalid", Opcode(0).Name())
	assert.Equal(t, "invalid", Opcode(17).Name())
}

func TestLongOpcodesFlaggedCorrectly(t *testing.T) {
	for op, def := range opcodeTable {
		want := op == OpLld || op == OpLldi || op == OpLfork
		assert.Equal(t, want, def.Long, "opcode %s", def.Name)
	}
}

func TestAllOpcodesHaveOneToThreeOperands(t *testing.T) {
	for op, def := range opcodeTable {
		assert.GreaterOrEqual(t, len(def.Operands), 1, "opcode %s", op.Name())
		assert.LessOrEqual(t, len(def.Operands), 3, "opcode %s", op.Name())
	}
}
