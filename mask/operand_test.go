package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperandField(t *testing.T) {
	// 0b01_10_11_00: slot1=Register, slot2=Direct, slot3=Indirect, reserved=00
	enc := byte(0b01_10_11_00)
	assert.Equal(t, KindReg, OperandField(enc, 1))
	assert.Equal(t, KindDir, OperandField(enc, 2))
	assert.Equal(t, KindInd, OperandField(enc, 3))
	assert.Equal(t, byte(0b00), ReservedBits(enc))
}

func TestOperandFieldAbsent(t *testing.T) {
	assert.Equal(t, KindAbsent, OperandField(0, 1))
	assert.Equal(t, KindAbsent, OperandField(0, 2))
	assert.Equal(t, KindAbsent, OperandField(0, 3))
}

func TestOperandFieldInvalidSlotPanics(t *testing.T) {
	assert.Panics(t, func() { OperandField(0, 4) })
}

func TestOperandKindString(t *testing.T) {
	assert.Equal(t, "register", KindReg.String())
	assert.Equal(t, "direct", KindDir.String())
	assert.Equal(t, "indirect", KindInd.String())
	assert.Equal(t, "absent", KindAbsent.String())
}
