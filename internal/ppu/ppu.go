// Package ppu implements the DMG picture processing unit: the per-dot
// mode-state machine driving LY across 154 scanlines, VRAM/OAM storage,
// the LCDC/STAT/SCY/SCX/LYC/BGP/OBP0/OBP1/WY/WX register window, and the
// background/window/sprite compositor that fills a 160x144 framebuffer.
package ppu

import "nitro-core-dx/internal/debug"

// Screen and timing constants from the spec's scanline/frame model.
const (
	ScreenWidth  = 160
	ScreenHeight = 144

	DotsPerScanline   = 456
	OAMScanDots       = 80
	PixelTransferDots = 172
	VisibleScanlines  = 144
	TotalScanlines    = 154
)

// Mode values as they appear in STAT bits 0-1.
const (
	ModeHBlank = 0
	ModeVBlank = 1
	ModeOAM    = 2
	ModeTransfer = 3
)

// LCDC bit masks.
const (
	lcdcBGWindowEnable = 1 << 0
	lcdcSpriteEnable   = 1 << 1
	lcdcSpriteSize     = 1 << 2
	lcdcBGTileMap      = 1 << 3
	lcdcTileDataArea   = 1 << 4
	lcdcWindowEnable   = 1 << 5
	lcdcWindowTileMap  = 1 << 6
	lcdcLCDEnable      = 1 << 7
)

// STAT bit masks.
const (
	statLYCEqualLY     = 1 << 2
	statMode0IntEnable = 1 << 3
	statMode1IntEnable = 1 << 4
	statMode2IntEnable = 1 << 5
	statLYCIntEnable   = 1 << 6
)

// IRQRequester is the subset of the interrupt controller the PPU needs
// to raise VBlank and LCD STAT interrupts.
type IRQRequester interface {
	Request(source uint8)
}

const (
	sourceVBlank  uint8 = 1 << 0
	sourceLCDStat uint8 = 1 << 1
)

// sprite is one entry built by the mode-2 OAM scan for the current line.
type sprite struct {
	y, x       int
	tileIndex  uint8
	attrs      uint8
	oamIndex   int
}

// PPU owns VRAM, OAM, the LCD registers, and the mode-schedule state
// machine. Read8/Write8 sit directly in the bus's VRAM, OAM, and
// 0xFF40-0xFF4B register windows.
type PPU struct {
	VRAM [0x2000]uint8
	OAM  [160]uint8

	LCDC, STAT         uint8
	SCY, SCX           uint8
	LY, LYC            uint8
	BGP, OBP0, OBP1    uint8
	WY, WX             uint8

	mode int
	dot  int

	windowLineCounter int

	statLineHigh bool

	scanline [10]sprite
	nSprites int

	FrameBuffer  [ScreenWidth * ScreenHeight]uint8
	OutputBuffer [ScreenWidth * ScreenHeight]uint32
	FrameComplete bool
	frameCount    uint64

	Irq    IRQRequester
	Logger *debug.Logger
}

// shades is the classic 4-level DMG greenish-grey palette, ARGB8888 with
// alpha forced opaque, indexed by the 2-bit post-palette color.
var shades = [4]uint32{
	0xFFE0F8D0,
	0xFF88C070,
	0xFF346856,
	0xFF081820,
}

// New creates a PPU wired to irq, with LCDC/BGP at their documented
// post-boot values and the mode machine parked at the start of line 0.
func New(irq IRQRequester, logger *debug.Logger) *PPU {
	p := &PPU{Irq: irq, Logger: logger}
	p.LCDC = 0x91
	p.BGP = 0xFC
	p.mode = ModeOAM
	return p
}

// GetScanline returns the current LY value as an int, for debug tooling.
func (p *PPU) GetScanline() int { return int(p.LY) }

// GetDot returns the dot offset within the current scanline.
func (p *PPU) GetDot() int { return p.dot }

// GetOAMByteIndex reports the OAM offset the mode-2 scan last examined,
// for debug tooling; it is simply 4x the sprite count already scanned.
func (p *PPU) GetOAMByteIndex() uint8 { return uint8(p.nSprites * 4) }

// Mode returns the current PPU mode (0-3).
func (p *PPU) Mode() int { return p.mode }

// FrameCounter returns the number of frames completed so far, for trace
// and debug tooling.
func (p *PPU) FrameCounter() uint64 { return p.frameCount }

func (p *PPU) vramBlocked() bool  { return p.lcdOn() && p.mode == ModeTransfer }
func (p *PPU) oamBlocked() bool   { return p.lcdOn() && (p.mode == ModeOAM || p.mode == ModeTransfer) }
func (p *PPU) lcdOn() bool        { return p.LCDC&lcdcLCDEnable != 0 }

// Read8 dispatches VRAM (0x8000-0x9FFF), OAM (0xFE00-0xFE9F), and the
// LCD register window (0xFF40-0xFF4B).
func (p *PPU) Read8(addr uint16) uint8 {
	switch {
	case addr >= 0x8000 && addr < 0xA000:
		if p.vramBlocked() {
			return 0xFF
		}
		return p.VRAM[addr-0x8000]
	case addr >= 0xFE00 && addr < 0xFEA0:
		if p.oamBlocked() {
			return 0xFF
		}
		return p.OAM[addr-0xFE00]
	default:
		return p.readRegister(addr)
	}
}

// Write8 dispatches VRAM, OAM, and the LCD register window.
func (p *PPU) Write8(addr uint16, v uint8) {
	switch {
	case addr >= 0x8000 && addr < 0xA000:
		if !p.vramBlocked() {
			p.VRAM[addr-0x8000] = v
		}
	case addr >= 0xFE00 && addr < 0xFEA0:
		if !p.oamBlocked() {
			p.OAM[addr-0xFE00] = v
		}
	default:
		p.writeRegister(addr, v)
	}
}

func (p *PPU) readRegister(addr uint16) uint8 {
	switch addr {
	case 0xFF40:
		return p.LCDC
	case 0xFF41:
		return p.STAT | 0x80
	case 0xFF42:
		return p.SCY
	case 0xFF43:
		return p.SCX
	case 0xFF44:
		return p.LY
	case 0xFF45:
		return p.LYC
	case 0xFF47:
		return p.BGP
	case 0xFF48:
		return p.OBP0
	case 0xFF49:
		return p.OBP1
	case 0xFF4A:
		return p.WY
	case 0xFF4B:
		return p.WX
	default:
		return 0xFF
	}
}

func (p *PPU) writeRegister(addr uint16, v uint8) {
	switch addr {
	case 0xFF40:
		wasOn := p.lcdOn()
		p.LCDC = v
		if wasOn && !p.lcdOn() {
			p.disableLCD()
		} else if !wasOn && p.lcdOn() {
			p.enableLCD()
		}
	case 0xFF41:
		p.STAT = (p.STAT & 0x07) | (v & 0x78)
	case 0xFF42:
		p.SCY = v
	case 0xFF43:
		p.SCX = v
	case 0xFF44:
		// LY is read-only on real hardware; writes are dropped.
	case 0xFF45:
		p.LYC = v
		p.updateLYCFlag()
	case 0xFF47:
		p.BGP = v
	case 0xFF48:
		p.OBP0 = v
	case 0xFF49:
		p.OBP1 = v
	case 0xFF4A:
		p.WY = v
	case 0xFF4B:
		p.WX = v
	}
}

// disableLCD resets LY and the mode machine the instant the screen is
// switched off, per spec's boundary behavior.
func (p *PPU) disableLCD() {
	p.LY = 0
	p.dot = 0
	p.mode = ModeHBlank
	p.windowLineCounter = 0
	p.statLineHigh = false
	p.updateLYCFlag()
	if p.Logger != nil && p.Logger.IsComponentEnabled(debug.ComponentPPU) {
		p.Logger.LogPPU(debug.LogLevelDebug, "LCD disabled", nil)
	}
}

// enableLCD begins a fresh frame at OAM-scan of line 0.
func (p *PPU) enableLCD() {
	p.LY = 0
	p.dot = 0
	p.mode = ModeOAM
	p.windowLineCounter = 0
	p.scanOAM()
}
