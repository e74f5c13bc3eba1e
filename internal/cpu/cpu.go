package cpu

import "fmt"

// Bus is the memory interface the CPU issues 8-bit reads and writes
// through. Calls are synchronous: they complete within the machine cycle
// that issued them.
type Bus interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, value uint8)
}

// Interrupts is the interface to the interrupt controller. The CPU
// consults Pending at the top of every step and, with IME set, services
// the request.
type Interrupts interface {
	Pending() (source uint8, vector uint16, ok bool)
	Ack(source uint8)
}

// LoggerInterface receives a trace event for every retired instruction.
// A nil Logger is valid; tracing must never change CPU behavior.
type LoggerInterface interface {
	LogCPU(pc uint16, opcode uint8, mnemonic string, regs Registers, cycles int)
}

// ErrIllegalOpcode is returned by Step when the fetched opcode is one of
// the undefined bytes the LR35902 never assigned. Real hardware locks up
// executing such an opcode; this implementation refuses to advance so the
// condition is observable instead of silently skipped.
var ErrIllegalOpcode = fmt.Errorf("illegal opcode")

// CPU is the instruction interpreter: registers, flags, and the fetch-
// decode-execute loop over the 256-entry main table and 256-entry
// CB-prefixed table.
type CPU struct {
	Regs Registers

	Bus    Bus
	IRQ    Interrupts
	Logger LoggerInterface

	halted         bool
	locked         bool // set once an illegal opcode is fetched
	ime            bool
	imePending     bool
	haltBugPending bool
	branchTaken    bool // set by a conditional op's exec fn when it branches
}

// New creates a CPU wired to the given bus and interrupt controller.
func New(bus Bus, irq Interrupts) *CPU {
	c := &CPU{Bus: bus, IRQ: irq}
	c.Reset()
	return c
}

// Reset sets the documented post-boot DMG register values and clears
// interpreter state. It does not touch the bus; callers that need the
// post-boot-ROM memory image (e.g. boot-disabled I/O registers) set those
// up separately.
func (c *CPU) Reset() {
	c.Regs = Registers{SP: 0xFFFE, PC: 0x0100}
	c.Regs.SetAF(0x01B0)
	c.Regs.SetBC(0x0013)
	c.Regs.SetDE(0x00D8)
	c.Regs.SetHL(0x014D)
	c.halted = false
	c.locked = false
	c.ime = false
	c.imePending = false
	c.haltBugPending = false
}

// Locked reports whether the CPU fetched an illegal opcode and is
// refusing to execute further instructions.
func (c *CPU) Locked() bool { return c.locked }

// IME reports the current interrupt master enable state.
func (c *CPU) IME() bool { return c.ime }

// Halted reports whether the CPU is in the HALT state.
func (c *CPU) Halted() bool { return c.halted }

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.Bus.Read8(addr)
	hi := c.Bus.Read8(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) write16(addr uint16, v uint16) {
	c.Bus.Write8(addr, uint8(v))
	c.Bus.Write8(addr+1, uint8(v>>8))
}

func (c *CPU) fetch8() uint8 {
	v := c.Bus.Read8(c.Regs.PC)
	c.Regs.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) push16(v uint16) {
	c.Regs.SP -= 2
	c.write16(c.Regs.SP, v)
}

func (c *CPU) pop16() uint16 {
	v := c.read16(c.Regs.SP)
	c.Regs.SP += 2
	return v
}

// Step fetches and executes one instruction, servicing a pending
// interrupt first if IME allows it, and returns the number of dot-cycles
// consumed. If HALT is active and nothing is pending, Step returns 4
// without fetching anything.
func (c *CPU) Step() (int, error) {
	if c.locked {
		return 0, ErrIllegalOpcode
	}

	if serviced, cycles := c.serviceInterrupt(); serviced {
		return cycles, nil
	}

	if c.halted {
		if _, _, ok := c.IRQ.Pending(); ok {
			c.halted = false
		} else {
			return 4, nil
		}
	}

	pc := c.Regs.PC
	var opcode uint8
	if c.haltBugPending {
		// The halt bug: the opcode byte after HALT is read without
		// advancing PC, so the instruction is decoded twice.
		opcode = c.Bus.Read8(c.Regs.PC)
		c.haltBugPending = false
	} else {
		opcode = c.fetch8()
	}

	var entry *opcodeEntry
	if opcode == 0xCB {
		sub := c.fetch8()
		entry = &cbTable[sub]
	} else {
		entry = &mainTable[opcode]
	}

	if entry.exec == nil {
		c.Regs.PC = pc // illegal opcodes must not silently advance
		c.locked = true
		return 0, ErrIllegalOpcode
	}

	// Only an EI retired before this instruction promotes IME now; an EI
	// executed by this instruction waits for the next one.
	enableIME := c.imePending

	c.branchTaken = false
	entry.exec(c)

	cycles := entry.cycles
	if c.branchTaken && entry.branchCycles != 0 {
		cycles = entry.branchCycles
	}

	if enableIME && c.imePending {
		c.imePending = false
		c.ime = true
	}

	if c.Logger != nil {
		c.Logger.LogCPU(pc, opcode, entry.mnemonic, c.Regs, cycles)
	}

	return cycles, nil
}

// serviceInterrupt performs the 5-machine-cycle (20 dot) interrupt
// dispatch sequence if IME is set and a source is pending. A pending
// interrupt always wakes the CPU from HALT; it is only dispatched (PC
// redirected, IME cleared) when IME was also set.
func (c *CPU) serviceInterrupt() (bool, int) {
	source, vector, ok := c.IRQ.Pending()
	if !ok {
		return false, 0
	}
	if c.halted {
		c.halted = false
	}
	if !c.ime {
		return false, 0
	}

	c.ime = false
	c.imePending = false
	c.IRQ.Ack(source)

	c.push16(c.Regs.PC)
	c.Regs.PC = vector

	return true, 20
}

// requestEI arms the one-instruction-deferred interrupt enable. ime
// becomes true only after the instruction following EI has retired,
// regardless of what that instruction is -- this is what keeps
// `EI; RET` from admitting an interrupt between the two.
func (c *CPU) requestEI() {
	c.imePending = true
}

func (c *CPU) di() {
	c.ime = false
	c.imePending = false
}

// halt enters the HALT state. If IME is false and an interrupt source is
// already pending (IE&IF != 0) at the moment HALT executes, HALT does not
// actually suspend the CPU; instead the halt bug is armed for the next
// fetch.
func (c *CPU) halt() {
	if !c.ime {
		if _, _, ok := c.IRQ.Pending(); ok {
			c.haltBugPending = true
			return
		}
	}
	c.halted = true
}
