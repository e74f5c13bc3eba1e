// Package romgen builds small, fully-executable DMG cartridge images
// in Go, one function per fixture, the way the teacher's test/roms
// one-file-per-ROM tools build demo cartridges -- except these emit
// real LR35902 machine code through internal/rom.Builder directly
// instead of the teacher's fictional word-addressed encoder. Each
// builder returns a ready-to-load 32 KiB image; internal/emulator's
// tests load them straight into emulator.New and drive the resulting
// Machine to check the behavior the fixture is named for.
package romgen

// I/O port addresses used across more than one fixture. LDH operand n
// reaches 0xFF00+n, so these are all expressed as the low byte LDH
// takes, matching how the generated code actually writes them.
const (
	portSB   = 0x01 // 0xFF01 serial transfer data
	portSC   = 0x02 // 0xFF02 serial transfer control
	portTIMA = 0x05 // 0xFF05
	portTMA  = 0x06 // 0xFF06
	portTAC  = 0x07 // 0xFF07
	portIF   = 0x0F // 0xFF0F
	portNR10 = 0x10 // 0xFF10 channel 1 sweep
	portNR13 = 0x13 // 0xFF13 channel 1 period low
	portNR14 = 0x14 // 0xFF14 channel 1 period high / trigger
	portNR50 = 0x24 // 0xFF24 master volume
	portNR51 = 0x25 // 0xFF25 channel-to-terminal routing
	portNR52 = 0x26 // 0xFF26 power/status
	portLCDC = 0x40 // 0xFF40
	portSTAT = 0x41 // 0xFF41
	portSCY  = 0x42 // 0xFF42
	portSCX  = 0x43 // 0xFF43
	portBGP  = 0x47 // 0xFF47
	portOBP0 = 0x48 // 0xFF48
	portLY   = 0x44 // 0xFF44
	portIE   = 0xFF // 0xFFFF interrupt enable, reachable since LDH's
	// operand window runs through the whole zero page up to 0xFFFF
)

// oamSprite0Y and oamSprite0X are the flat bus addresses of OAM entry
// 0's position bytes, used by fixtures that move a sprite directly
// through the bus rather than through a DMA transfer.
const (
	oamSprite0Y = 0xFE00
	oamSprite0X = 0xFE01
)

// Opcode constants for the handful of encodings every fixture needs.
// These mirror internal/cpu/opcodes.go's dispatch table exactly; naming
// them here keeps the byte-literal fixture builders readable without
// pulling in the text assembler for what is, in each case, a couple of
// dozen instructions.
const (
	opNOP    = 0x00
	opLDBCnn = 0x01
	opLDBn   = 0x06
	opLDCn   = 0x0E
	opLDHLnn = 0x21
	opLDHLIA = 0x22 // LD (HL+),A
	opXORAn  = 0xEE
	opANDAn  = 0xE6
	opLDAn   = 0x3E
	opDECB   = 0x05
	opDECC   = 0x0D
	opJRNZ   = 0x20
	opJRZ    = 0x28
	opJR     = 0x18
	opLDHnA  = 0xE0
	opLDHAn  = 0xF0
	opDI     = 0xF3
	opEI     = 0xFB
	opHALT   = 0x76
	opRET    = 0xC9
	opINCA   = 0x3C
	opDECA   = 0x3D
	opCPn    = 0xFE
	opLDnnA  = 0xEA
)
