// Package serial implements the DMG's serial port registers (SB/SC) and
// an internal-clock-only transfer model: since no link cable partner is
// emulated, a transfer started with the internal clock always shifts in
// 0xFF and completes after a fixed duration, delivering the transmitted
// byte to a Sink and raising the serial interrupt.
package serial

// Sink receives bytes as they are shifted out by a completed transfer.
// An implementation that only wants to observe output (a conformance
// fixture, a terminal echo) can satisfy this with a single method.
type Sink interface {
	WriteByte(b byte) error
}

// IRQRequester is the subset of the interrupt controller serial needs.
type IRQRequester interface {
	Request(source uint8)
}

const sourceSerial uint8 = 1 << 3

// transferCycles is the duration of one 8-bit internal-clock transfer:
// the DMG shifts one bit per 512 cycles, 8 bits per byte.
const transferCycles = 512 * 8

// Port holds SB/SC and the in-flight transfer countdown, if any.
type Port struct {
	sb uint8
	sc uint8

	remaining int
	active    bool

	sink Sink
	irq  IRQRequester
}

// New creates a Port that writes completed transfers to sink.
func New(sink Sink, irq IRQRequester) *Port {
	return &Port{sink: sink, irq: irq}
}

// Tick advances any in-flight transfer by cycles T-cycles.
func (p *Port) Tick(cycles int) {
	if !p.active {
		return
	}
	p.remaining -= cycles
	if p.remaining <= 0 {
		p.active = false
		p.sc &^= 0x80
		if p.sink != nil {
			p.sink.WriteByte(p.sb)
		}
		p.sb = 0xFF // no link partner: every bit shifted in is 1
		p.irq.Request(sourceSerial)
	}
}

func (p *Port) SB() uint8 { return p.sb }

func (p *Port) WriteSB(v uint8) { p.sb = v }

func (p *Port) SC() uint8 { return p.sc | 0x7C }

// WriteSC starts a transfer when both the start bit (7) and the internal
// clock bit (0) are set; external-clock transfers never complete since no
// link partner drives the clock.
func (p *Port) WriteSC(v uint8) {
	p.sc = v & 0x81
	if p.sc&0x81 == 0x81 {
		p.active = true
		p.remaining = transferCycles
	}
}

// Read8 and Write8 let the port sit at 0xFF01-0xFF02 in the I/O window.
func (p *Port) Read8(addr uint16) uint8 {
	switch addr {
	case 0xFF01:
		return p.SB()
	case 0xFF02:
		return p.SC()
	default:
		return 0xFF
	}
}

func (p *Port) Write8(addr uint16, v uint8) {
	switch addr {
	case 0xFF01:
		p.WriteSB(v)
	case 0xFF02:
		p.WriteSC(v)
	}
}
