package ppu

// State is a complete, serializable snapshot of the PPU's VRAM, OAM,
// registers, and mode-schedule position, used by save states. The
// per-scanline sprite scan cache is intentionally excluded: it is pure
// derived state rebuilt every time mode 2 is entered, so a restore that
// lands mid pixel-transfer simply rebuilds it on the next OAM scan.
type State struct {
	VRAM [0x2000]uint8
	OAM  [160]uint8

	LCDC, STAT      uint8
	SCY, SCX        uint8
	LY, LYC         uint8
	BGP, OBP0, OBP1 uint8
	WY, WX          uint8

	Mode              int
	Dot               int
	WindowLineCounter int
	StatLineHigh      bool

	FrameCount uint64
}

// Snapshot captures the PPU's current state.
func (p *PPU) Snapshot() State {
	return State{
		VRAM: p.VRAM, OAM: p.OAM,
		LCDC: p.LCDC, STAT: p.STAT,
		SCY: p.SCY, SCX: p.SCX,
		LY: p.LY, LYC: p.LYC,
		BGP: p.BGP, OBP0: p.OBP0, OBP1: p.OBP1,
		WY: p.WY, WX: p.WX,
		Mode: p.mode, Dot: p.dot,
		WindowLineCounter: p.windowLineCounter,
		StatLineHigh:      p.statLineHigh,
		FrameCount:        p.frameCount,
	}
}

// Restore installs a previously captured State.
func (p *PPU) Restore(s State) {
	p.VRAM, p.OAM = s.VRAM, s.OAM
	p.LCDC, p.STAT = s.LCDC, s.STAT
	p.SCY, p.SCX = s.SCY, s.SCX
	p.LY, p.LYC = s.LY, s.LYC
	p.BGP, p.OBP0, p.OBP1 = s.BGP, s.OBP0, s.OBP1
	p.WY, p.WX = s.WY, s.WX
	p.mode, p.dot = s.Mode, s.Dot
	p.windowLineCounter = s.WindowLineCounter
	p.statLineHigh = s.StatLineHigh
	p.frameCount = s.FrameCount
	p.nSprites = 0
}
