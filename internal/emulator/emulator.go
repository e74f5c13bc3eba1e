// Package emulator wires the cartridge, bus, CPU, PPU, APU, timer,
// joypad, serial port, and interrupt controller into a single Machine
// and drives them in the cooperative, single-threaded step loop a real
// DMG's shared dot clock implies: one CPU instruction at a time, with
// every other component catching up by exactly the dots that
// instruction consumed.
package emulator

import (
	"fmt"
	"time"

	"nitro-core-dx/internal/apu"
	"nitro-core-dx/internal/cartridge"
	"nitro-core-dx/internal/clock"
	"nitro-core-dx/internal/cpu"
	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/interrupt"
	"nitro-core-dx/internal/joypad"
	"nitro-core-dx/internal/memory"
	"nitro-core-dx/internal/ppu"
	"nitro-core-dx/internal/serial"
	"nitro-core-dx/internal/timer"
)

// sampleRate is the host audio rate the APU's ring buffer downsamples to.
const sampleRate = 44100

// Machine owns every DMG subsystem and is the sole place mutable state
// crosses component boundaries -- the bus receives plain interfaces, not
// raw pointers between siblings, so there is exactly one owner per field.
type Machine struct {
	CPU         *cpu.CPU
	Bus         *memory.Bus
	Cartridge   *cartridge.Cartridge
	Interrupts  *interrupt.Controller
	PPU         *ppu.PPU
	APU         *apu.APU
	Timer       *timer.Timer
	Joypad      *joypad.Joypad
	Serial      *serial.Port
	Logger      *debug.Logger
	CycleLogger *debug.CycleLogger

	clock *clock.MasterClock

	serialOut *serialCapture

	// OnFrame, if set, is called at the VBlank edge with the just
	// completed frame's RGBA output buffer.
	OnFrame func([]uint32)

	// FrameCount is the number of frames completed since the Machine
	// was created or last Reset.
	FrameCount uint64
}

// New parses rom, selects its mapper, and wires a complete Machine ready
// to run from the CPU's documented post-boot state. It fails with
// cartridge.ErrInvalidHeader or cartridge.ErrUnsupportedMapper exactly as
// cartridge.New does.
func New(rom []byte) (*Machine, error) {
	return NewWithLogger(rom, debug.NewLogger(10000))
}

// NewWithLogger is New but lets the caller supply (and keep a handle to)
// the shared debug logger instead of getting a fresh, all-components-
// disabled one.
func NewWithLogger(rom []byte, logger *debug.Logger) (*Machine, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("load cartridge: %w", err)
	}
	return newMachine(cart, logger), nil
}

// NewWithMapperOverride is NewWithLogger but forces the cartridge to use
// the named mapper instead of trusting its header's cartridge-type byte,
// for ROMs whose header a host's config has flagged as wrong.
func NewWithMapperOverride(rom []byte, logger *debug.Logger, mapperOverride string) (*Machine, error) {
	cart, err := cartridge.NewWithMapperOverride(rom, mapperOverride)
	if err != nil {
		return nil, fmt.Errorf("load cartridge: %w", err)
	}
	return newMachine(cart, logger), nil
}

func newMachine(cart *cartridge.Cartridge, logger *debug.Logger) *Machine {
	m := &Machine{
		Cartridge: cart,
		Logger:    logger,
		serialOut: &serialCapture{},
	}

	m.Interrupts = interrupt.New()
	m.PPU = ppu.New(m.Interrupts, logger)
	m.APU = apu.New(sampleRate, 0.25, logger)
	m.Timer = timer.New(m.Interrupts)
	m.Joypad = joypad.New(m.Interrupts)
	m.Serial = serial.New(m.serialOut, m.Interrupts)

	m.Bus = memory.NewBus(cart, m.PPU, m.APU, m.Joypad, m.Serial, m.Timer, m.Interrupts)
	m.Bus.SetLogger(logger)

	cpuLogger := cpu.NewLoggerAdapter(logger, cpu.LogNone)
	m.CPU = cpu.New(m.Bus, m.Interrupts)
	m.CPU.Logger = cpuLogger

	m.clock = clock.NewMasterClock()
	m.clock.CPUStep = func() (int, error) {
		dots, err := m.CPU.Step()
		if err == nil {
			dots += m.Bus.ConsumeDMACycles()
		}
		if err == nil && m.CycleLogger != nil && m.CycleLogger.IsEnabled() {
			m.logCycle()
		}
		return dots, err
	}
	m.clock.PPUStep = func(dots int) {
		m.PPU.Step(dots)
		if m.PPU.FrameComplete {
			m.PPU.FrameComplete = false
			m.FrameCount++
			if m.OnFrame != nil {
				m.OnFrame(m.PPU.OutputBuffer[:])
			}
		}
	}
	m.clock.APUStep = func(dots int) { m.APU.Tick(dots) }
	m.clock.TimerStep = func(dots int) { m.Timer.Tick(dots) }
	m.clock.SerialStep = func(dots int) { m.Serial.Tick(dots) }

	return m
}

// Reset restores the CPU to its documented post-boot register values.
// Cartridge contents, VRAM, and WRAM are untouched, matching a DMG's
// reset line behavior (only the CPU and its latched interrupt state
// reinitialize; RAM retains whatever the program last wrote).
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.clock.Reset()
}

// StepCycles runs instructions until at least n dots have been
// dispatched, per the spec's step_cycles(machine, n) operation. It never
// stops mid-instruction -- the final step may overrun n by up to its own
// dot count (24 for the longest instruction, plus 640 when that
// instruction starts an OAM DMA).
func (m *Machine) StepCycles(n int) error {
	total := 0
	for total < n {
		dots, err := m.clock.Step()
		if err != nil {
			return err
		}
		total += dots
	}
	return nil
}

// StepUntilVBlank runs instructions until the PPU has just completed a
// frame, per the spec's step_until_vblank(machine) operation.
func (m *Machine) StepUntilVBlank() error {
	startFrame := m.FrameCount
	for m.FrameCount == startFrame {
		if _, err := m.clock.Step(); err != nil {
			return err
		}
	}
	return nil
}

// StepOne retires exactly one CPU instruction and advances every other
// subsystem by the dots it consumed, returning the dot count. This is
// the single-instruction granularity cmd/debugger steps at; StepCycles
// and StepUntilVBlank both build on the same underlying clock.
func (m *Machine) StepOne() (int, error) {
	return m.clock.Step()
}

// FrameBuffer returns the PPU's ARGB8888 output buffer for the most
// recently completed (or in-progress) frame, 160x144 pixels row-major.
func (m *Machine) FrameBuffer() []uint32 {
	return m.PPU.OutputBuffer[:]
}

// AudioPull copies up to len(buf) interleaved stereo int16 samples from
// the APU's ring buffer into buf and returns the count written.
func (m *Machine) AudioPull(buf []int16) int {
	return m.APU.Pull(buf)
}

// buttonBits is the set_buttons(machine, mask) bit layout: one bit per
// button, 1 meaning pressed, ordered Right/Left/Up/Down/A/B/Select/Start
// from bit 0.
var buttonBits = [8]joypad.Button{
	joypad.Right, joypad.Left, joypad.Up, joypad.Down,
	joypad.A, joypad.B, joypad.Select, joypad.Start,
}

// SetButtons applies an 8-bit pressed/released mask across all eight
// buttons in one call, raising the joypad interrupt for every bit that
// newly asserts a currently-selected line.
func (m *Machine) SetButtons(mask uint8) {
	for i, b := range buttonBits {
		m.Joypad.SetButton(b, mask&(1<<uint(i)) != 0)
	}
}

// SerialOutput returns the bytes the serial port has shifted out over
// the internal clock so far -- the conformance fixtures' pass/fail
// marker channel when no host link-cable sink is attached.
func (m *Machine) SerialOutput() []byte {
	return m.serialOut.out
}

// EnableCycleLogger opens filename and starts recording one trace line
// per retired instruction, combining CPU, PPU, and APU state.
func (m *Machine) EnableCycleLogger(filename string, maxCycles, startCycle uint64) error {
	logger, err := debug.NewCycleLogger(filename, maxCycles, startCycle, m.Bus, newPPUTraceAdapter(m.PPU), newAPUTraceAdapter(m.APU))
	if err != nil {
		return err
	}
	m.CycleLogger = logger
	return nil
}

// RunFrame advances exactly one frame using wall-clock-paced frame
// limiting, for hosts (the SDL front end, the debugger) that want a
// simple "one call per vsync" loop instead of driving StepUntilVBlank
// themselves.
func (m *Machine) RunFrame(targetFPS float64) error {
	start := time.Now()
	if err := m.StepUntilVBlank(); err != nil {
		return err
	}
	if targetFPS <= 0 {
		return nil
	}
	frameTime := time.Duration(float64(time.Second) / targetFPS)
	if elapsed := time.Since(start); elapsed < frameTime {
		time.Sleep(frameTime - elapsed)
	}
	return nil
}

func (m *Machine) logCycle() {
	r := m.CPU.Regs
	m.CycleLogger.LogCycle(&debug.CPUStateSnapshot{
		A: r.A, F: r.F, B: r.B, C: r.C, D: r.D, E: r.E, H: r.H, L: r.L,
		SP: r.SP, PC: r.PC, IME: m.CPU.IME(),
	})
}
