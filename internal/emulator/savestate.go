package emulator

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"nitro-core-dx/internal/apu"
	"nitro-core-dx/internal/cpu"
	"nitro-core-dx/internal/joypad"
	"nitro-core-dx/internal/ppu"
	"nitro-core-dx/internal/serial"
	"nitro-core-dx/internal/timer"
)

// saveStateVersion is bumped whenever the SaveState shape changes in a
// way that breaks gob compatibility with previously written states.
const saveStateVersion = 1

// SaveState is a complete snapshot of everything a running Machine needs
// to resume from exactly where it left off, except the cartridge's ROM
// bank-select latches, which are not saved. The mapper's battery-backed
// external RAM, when it has any, is included in CartridgeRAM.
type SaveState struct {
	Version uint16

	CPU    cpu.State
	PPU    ppu.State
	APU    apu.State
	Timer  timer.State
	Joypad joypad.State
	Serial serial.State

	WRAM [0x2000]uint8
	HRAM [0x7F]uint8
	IE   uint8
	IF   uint8

	// CartridgeRAM is the mapper's battery-backed external RAM, captured
	// via cartridge.RAMPersister when the mapper carries any.
	CartridgeRAM []byte

	FrameCount uint64
}

func init() {
	gob.Register(SaveState{})
}

// SaveState captures the Machine's full running state into a byte slice.
func (m *Machine) SaveState() ([]byte, error) {
	s := SaveState{
		Version:    saveStateVersion,
		CPU:        m.CPU.Snapshot(),
		PPU:        m.PPU.Snapshot(),
		APU:        m.APU.Snapshot(),
		Timer:      m.Timer.Snapshot(),
		Joypad:     m.Joypad.Snapshot(),
		Serial:     m.Serial.Snapshot(),
		WRAM:       m.Bus.WRAM,
		HRAM:       m.Bus.HRAM,
		IE:         m.Interrupts.ReadIE(),
		IF:         m.Interrupts.ReadIF(),
		FrameCount: m.FrameCount,
	}
	if p, ok := m.Cartridge.Mapper.(interface{ SaveRAM() []byte }); ok {
		s.CartridgeRAM = p.SaveRAM()
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&s); err != nil {
		return nil, fmt.Errorf("encode save state: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadState restores a Machine's running state from data previously
// produced by SaveState. The cartridge ROM and mapper identity must
// already match -- LoadState restores bank RAM contents and interpreter
// state, not which mapper is wired in.
func (m *Machine) LoadState(data []byte) error {
	var s SaveState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return fmt.Errorf("decode save state: %w", err)
	}
	if s.Version != saveStateVersion {
		return fmt.Errorf("save state version %d unsupported (expected %d)", s.Version, saveStateVersion)
	}

	m.CPU.Restore(s.CPU)
	m.PPU.Restore(s.PPU)
	m.APU.Restore(s.APU)
	m.Timer.Restore(s.Timer)
	m.Joypad.Restore(s.Joypad)
	m.Serial.Restore(s.Serial)
	m.Bus.WRAM = s.WRAM
	m.Bus.HRAM = s.HRAM
	m.Interrupts.WriteIE(s.IE)
	m.Interrupts.WriteIF(s.IF)
	m.FrameCount = s.FrameCount
	if s.CartridgeRAM != nil {
		if p, ok := m.Cartridge.Mapper.(interface{ LoadRAM([]byte) }); ok {
			p.LoadRAM(s.CartridgeRAM)
		}
	}
	return nil
}

// SaveStateToFile writes SaveState's output to path.
func (m *Machine) SaveStateToFile(path string) error {
	data, err := m.SaveState()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadStateFromFile restores a Machine from a file previously written by
// SaveStateToFile.
func (m *Machine) LoadStateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read save state: %w", err)
	}
	return m.LoadState(data)
}
