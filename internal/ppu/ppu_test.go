package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockIRQ struct {
	requests []uint8
}

func (m *mockIRQ) Request(source uint8) { m.requests = append(m.requests, source) }

func newTestPPU() (*PPU, *mockIRQ) {
	irq := &mockIRQ{}
	p := New(irq, nil)
	return p, irq
}

func TestResetPostBootState(t *testing.T) {
	p, _ := newTestPPU()
	assert.Equal(t, uint8(0x91), p.LCDC)
	assert.Equal(t, uint8(0xFC), p.BGP)
	assert.Equal(t, ModeOAM, p.Mode())
}

func TestLYCyclesAcrossFrame(t *testing.T) {
	p, _ := newTestPPU()
	for line := 0; line < TotalScanlines; line++ {
		assert.Equal(t, uint8(line%TotalScanlines), p.LY)
		p.Step(DotsPerScanline)
	}
	assert.Equal(t, uint8(0), p.LY)
}

func TestVBlankInterruptFiresEnteringLine144(t *testing.T) {
	p, irq := newTestPPU()
	p.Step(DotsPerScanline * VisibleScanlines)
	assert.Equal(t, uint8(VisibleScanlines), p.LY)
	assert.Equal(t, ModeVBlank, p.Mode())
	assert.Contains(t, irq.requests, sourceVBlank)
}

func TestLYCInterruptFiresOnRisingEdgeOnly(t *testing.T) {
	p, irq := newTestPPU()
	p.LYC = 1
	p.STAT |= statLYCIntEnable
	p.Step(DotsPerScanline + 1) // LY 0 -> 1, then one dot on line 1 where the compare sees it
	count := 0
	for _, r := range irq.requests {
		if r == sourceLCDStat {
			count++
		}
	}
	assert.Equal(t, 1, count)

	irq.requests = nil
	p.Step(DotsPerScanline) // rest of line 1, into line 2: LYC still 1, no new edge
	for _, r := range irq.requests {
		assert.NotEqual(t, sourceLCDStat, r)
	}
}

func TestModeSTATInterruptRespectsEnableBits(t *testing.T) {
	p, irq := newTestPPU()
	p.STAT |= statMode2IntEnable
	p.Step(DotsPerScanline) // mode 2 (OAM) is current from dot 0 of line 0
	found := false
	for _, r := range irq.requests {
		if r == sourceLCDStat {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDisablingLCDResetsLYAndMode(t *testing.T) {
	p, _ := newTestPPU()
	p.Step(300)
	p.Write8(0xFF40, p.LCDC&^0x80)
	assert.Equal(t, uint8(0), p.LY)
	assert.Equal(t, ModeHBlank, p.Mode())

	p.Step(1000) // LCD off: the mode machine must not advance
	assert.Equal(t, uint8(0), p.LY)
}

func TestEnablingLCDStartsFreshFrame(t *testing.T) {
	p, _ := newTestPPU()
	p.Write8(0xFF40, p.LCDC&^0x80)
	p.Write8(0xFF40, p.LCDC|0x80)
	assert.Equal(t, uint8(0), p.LY)
	assert.Equal(t, ModeOAM, p.Mode())
}

// buildTile writes an 8x8 tile of a single 2bpp color index at vramOffset.
func buildTile(p *PPU, vramOffset uint16, colorIndex uint8) {
	var lo, hi uint8
	if colorIndex&0x01 != 0 {
		lo = 0xFF
	}
	if colorIndex&0x02 != 0 {
		hi = 0xFF
	}
	for row := 0; row < 8; row++ {
		p.VRAM[vramOffset+uint16(row*2)] = lo
		p.VRAM[vramOffset+uint16(row*2)+1] = hi
	}
}

func TestCheckerboardTilemapRenders(t *testing.T) {
	p, _ := newTestPPU()
	p.LCDC = 0x91 // BG+window on, unsigned tile data, 9800 bg map

	buildTile(p, 0x0000, 0) // tile 0: color 0
	buildTile(p, 0x0010, 3) // tile 1: color 3

	for ty := 0; ty < 18; ty++ {
		for tx := 0; tx < 20; tx++ {
			idx := uint8(0)
			if (tx+ty)%2 == 1 {
				idx = 1
			}
			p.VRAM[0x1800+uint16(ty*32+tx)] = idx
		}
	}

	p.Step(DotsPerScanline)

	assert.Equal(t, applyPalette(p.BGP, 0), p.FrameBuffer[0])
	assert.Equal(t, applyPalette(p.BGP, 3), p.FrameBuffer[8])
}

func TestSpritePriorityLowestXWins(t *testing.T) {
	p, _ := newTestPPU()
	p.LCDC |= lcdcSpriteEnable
	buildTile(p, 0x0000, 1)
	buildTile(p, 0x0010, 2)

	p.OAM[0], p.OAM[1], p.OAM[2], p.OAM[3] = 16, 20, 0, 0 // oam 0 at x=12
	p.OAM[4], p.OAM[5], p.OAM[6], p.OAM[7] = 16, 16, 1, 0 // oam 1 at x=8, lower x

	p.scanOAM()
	_, _, _, _, ok := p.findSpritePixel(8, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, p.scanline[0].oamIndex)
}

func TestSpriteLimitTenPerScanline(t *testing.T) {
	p, _ := newTestPPU()
	for i := 0; i < 15; i++ {
		base := i * 4
		p.OAM[base] = 16
		p.OAM[base+1] = uint8(8 + i)
	}
	p.scanOAM()
	assert.Equal(t, 10, p.nSprites)
}

func TestSpriteBGPriorityBitHidesBehindNonZeroBG(t *testing.T) {
	p, _ := newTestPPU()
	p.LCDC |= lcdcSpriteEnable
	buildTile(p, 0x0000, 3)

	p.OAM[0], p.OAM[1], p.OAM[2], p.OAM[3] = 16, 8, 0, 0x80 // BG-priority set
	p.scanOAM()

	_, _, _, behind, ok := p.findSpritePixel(0, 0)
	assert.True(t, ok)
	assert.True(t, behind)
}
