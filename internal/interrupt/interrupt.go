// Package interrupt implements the IE/IF register pair and the
// priority-ordered pending-interrupt selection the CPU consults at the
// top of every step.
package interrupt

// Source bit positions within IE and IF, in priority order (bit 0 highest).
const (
	VBlank uint8 = 1 << iota
	LCDStat
	Timer
	Serial
	Joypad
)

// Vector maps a source bit to its service vector address.
var Vector = map[uint8]uint16{
	VBlank:  0x0040,
	LCDStat: 0x0048,
	Timer:   0x0050,
	Serial:  0x0058,
	Joypad:  0x0060,
}

// Controller holds the IE and IF registers and answers the CPU's pending
// queries. It has no fallible paths: it is a register-and-mask pair.
type Controller struct {
	ie uint8
	iF uint8
}

// New creates a Controller with both registers cleared.
func New() *Controller {
	return &Controller{}
}

// Request sets the IF bit for source.
func (c *Controller) Request(source uint8) {
	c.iF |= source
}

// Ack clears the IF bit for source, performed by the CPU once it commits
// to servicing that source.
func (c *Controller) Ack(source uint8) {
	c.iF &^= source
}

// Pending returns the highest-priority source with both its IE and IF
// bits set, its service vector, and whether any such source exists.
func (c *Controller) Pending() (source uint8, vector uint16, ok bool) {
	active := c.ie & c.iF
	if active == 0 {
		return 0, 0, false
	}
	for _, s := range []uint8{VBlank, LCDStat, Timer, Serial, Joypad} {
		if active&s != 0 {
			return s, Vector[s], true
		}
	}
	return 0, 0, false
}

// ReadIE returns the IE register (address 0xFFFF).
func (c *Controller) ReadIE() uint8 { return c.ie }

// WriteIE writes the IE register.
func (c *Controller) WriteIE(v uint8) { c.ie = v }

// ReadIF returns the IF register, with the unused top 3 bits read as 1
// (real hardware always reads them high).
func (c *Controller) ReadIF() uint8 { return c.iF | 0xE0 }

// WriteIF writes the IF register, masked to the 5 defined bits.
func (c *Controller) WriteIF(v uint8) { c.iF = v & 0x1F }
