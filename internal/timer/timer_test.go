package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockIRQ struct {
	requested []uint8
}

func (m *mockIRQ) Request(source uint8) { m.requested = append(m.requested, source) }

func TestWriteDIVResetsCounter(t *testing.T) {
	irq := &mockIRQ{}
	tm := New(irq)
	tm.Tick(1000)
	assert.NotEqual(t, uint8(0), tm.DIV())

	tm.WriteDIV()
	assert.Equal(t, uint8(0), tm.DIV())
}

func TestTIMAIncrementsOnFallingEdgeAtSelectedFrequency(t *testing.T) {
	irq := &mockIRQ{}
	tm := New(irq)
	tm.WriteDIV()
	tm.WriteTAC(0x05) // enabled, bit 3 (262144 Hz): every 16 cycles

	tm.Tick(16)
	assert.Equal(t, uint8(1), tm.TIMA())
	tm.Tick(16)
	assert.Equal(t, uint8(2), tm.TIMA())
}

func TestTIMAOverflowReloadsTMAAfterDelayAndRequestsInterrupt(t *testing.T) {
	irq := &mockIRQ{}
	tm := New(irq)
	tm.WriteDIV()
	tm.WriteTMA(0x42)
	tm.WriteTAC(0x05)
	tm.WriteTIMA(0xFF)

	tm.Tick(16) // falling edge: TIMA -> 0x00, overflow armed
	assert.Equal(t, uint8(0x00), tm.TIMA())
	assert.Empty(t, irq.requested, "interrupt is delayed by one M-cycle")

	tm.Tick(4) // the delayed reload/interrupt fires
	assert.Equal(t, uint8(0x42), tm.TIMA())
	assert.Equal(t, []uint8{sourceTimer}, irq.requested)
}

func TestDisabledTimerDoesNotIncrementTIMA(t *testing.T) {
	irq := &mockIRQ{}
	tm := New(irq)
	tm.WriteDIV()
	tm.WriteTAC(0x01) // disabled (bit 2 clear), frequency select only

	tm.Tick(1000)
	assert.Equal(t, uint8(0), tm.TIMA())
}

func TestWritingTACCanTriggerImmediateFallingEdge(t *testing.T) {
	irq := &mockIRQ{}
	tm := New(irq)
	tm.WriteDIV()
	tm.WriteTAC(0x04) // enabled, bit 9 (4096 Hz)
	tm.Tick(1 << 9)   // sets bit 9 high

	tm.WriteTAC(0x00) // disabled while bit 9 is high: the gated bit falls
	assert.Equal(t, uint8(1), tm.TIMA())
}

func TestReadWriteViaIOAddresses(t *testing.T) {
	irq := &mockIRQ{}
	tm := New(irq)
	tm.Write8(0xFF06, 0x10)
	assert.Equal(t, uint8(0x10), tm.Read8(0xFF06))
	tm.Write8(0xFF07, 0x07)
	assert.Equal(t, uint8(0xFF), tm.Read8(0xFF07))
}
