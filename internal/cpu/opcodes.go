package cpu

// opcodeEntry describes one decoded instruction: its assembly mnemonic
// (used by the logger and debugger, never by dispatch), its base cycle
// cost, an alternate cost used when branchTaken is set by exec, and the
// function that performs the operation.
type opcodeEntry struct {
	mnemonic     string
	cycles       int
	branchCycles int
	exec         func(c *CPU)
}

// mainTable and cbTable are the 256+256 dispatch tables named in the
// instruction-interpreter design: a register-id is decoded into an
// accessor once (readReg8/writeReg8/readReg16/writeReg16 in alu.go) and
// every instruction body is expressed in terms of it, instead of a
// per-instruction eight-case switch on the register field.
var mainTable [256]opcodeEntry
var cbTable [256]opcodeEntry

// regOrder is the canonical decode order of the 3-bit register field used
// throughout the main opcode map: B,C,D,E,H,L,(HL),A.
var regOrder = [8]reg8{regB, regC, regD, regE, regH, regL, regHLInd, regA}

// pairOrder16 is the decode order of the 2-bit rr field for LD rr,nn /
// INC rr / DEC rr / ADD HL,rr (SP in slot 3, not AF).
var pairOrder16 = [4]reg16{regBC, regDE, regHL, regSP}

// stackPairOrder is the decode order of the 2-bit rr field for PUSH/POP
// (AF in slot 3, not SP).
var stackPairOrder = [4]reg16{regBC, regDE, regHL, regAF}

func init() {
	buildLoadRegToReg()
	buildALUBlock()
	buildIncDecReg()
	buildLoadRegImmediate()
	buildExplicitMain()
	buildCBTable()
}

// buildLoadRegToReg fills 0x40-0x7F, the LD r,r' block, skipping 0x76
// (HALT occupies the LD (HL),(HL) slot on real hardware).
func buildLoadRegToReg() {
	for dstIdx, dst := range regOrder {
		for srcIdx, src := range regOrder {
			opcode := uint8(0x40 + dstIdx*8 + srcIdx)
			if opcode == 0x76 {
				continue
			}
			dst, src := dst, src
			cycles := 4
			if dst == regHLInd || src == regHLInd {
				cycles = 8
			}
			mainTable[opcode] = opcodeEntry{
				mnemonic: "LD",
				cycles:   cycles,
				exec: func(c *CPU) {
					c.writeReg8(dst, c.readReg8(src))
				},
			}
		}
	}
	mainTable[0x76] = opcodeEntry{mnemonic: "HALT", cycles: 4, exec: func(c *CPU) { c.halt() }}
}

// buildALUBlock fills 0x80-0xBF: ADD, ADC, SUB, SBC, AND, XOR, OR, CP
// against A, one row of 8 registers each.
func buildALUBlock() {
	ops := []struct {
		name string
		fn   func(c *CPU, v uint8)
	}{
		{"ADD", func(c *CPU, v uint8) { c.add8(v, false) }},
		{"ADC", func(c *CPU, v uint8) { c.add8(v, true) }},
		{"SUB", func(c *CPU, v uint8) { c.sub8(v, false) }},
		{"SBC", func(c *CPU, v uint8) { c.sub8(v, true) }},
		{"AND", func(c *CPU, v uint8) { c.and8(v) }},
		{"XOR", func(c *CPU, v uint8) { c.xor8(v) }},
		{"OR", func(c *CPU, v uint8) { c.or8(v) }},
		{"CP", func(c *CPU, v uint8) { c.cp8(v) }},
	}
	for rowIdx, op := range ops {
		for srcIdx, src := range regOrder {
			opcode := uint8(0x80 + rowIdx*8 + srcIdx)
			src, fn := src, op.fn
			cycles := 4
			if src == regHLInd {
				cycles = 8
			}
			mainTable[opcode] = opcodeEntry{
				mnemonic: op.name,
				cycles:   cycles,
				exec: func(c *CPU) {
					fn(c, c.readReg8(src))
				},
			}
		}
	}
}

// buildIncDecReg fills the INC r / DEC r rows at 0x04+8i / 0x05+8i.
func buildIncDecReg() {
	for i, r := range regOrder {
		r := r
		cycles := 4
		if r == regHLInd {
			cycles = 12
		}
		mainTable[0x04+8*i] = opcodeEntry{mnemonic: "INC", cycles: cycles, exec: func(c *CPU) { c.inc8(r) }}
		mainTable[0x05+8*i] = opcodeEntry{mnemonic: "DEC", cycles: cycles, exec: func(c *CPU) { c.dec8(r) }}
	}
}

// buildLoadRegImmediate fills LD r,n at 0x06+8i.
func buildLoadRegImmediate() {
	for i, r := range regOrder {
		r := r
		cycles := 8
		if r == regHLInd {
			cycles = 12
		}
		mainTable[0x06+8*i] = opcodeEntry{mnemonic: "LD", cycles: cycles, exec: func(c *CPU) {
			c.writeReg8(r, c.fetch8())
		}}
	}
}

func cond(c *CPU, code uint8) bool {
	switch code {
	case 0:
		return !c.Regs.FlagSet(FlagZ)
	case 1:
		return c.Regs.FlagSet(FlagZ)
	case 2:
		return !c.Regs.FlagSet(FlagC)
	case 3:
		return c.Regs.FlagSet(FlagC)
	}
	return false
}

// buildExplicitMain fills every opcode that doesn't belong to one of the
// regular blocks above: control flow, 16-bit loads, stack ops, and the
// irregular single-byte instructions.
func buildExplicitMain() {
	mainTable[0x00] = opcodeEntry{mnemonic: "NOP", cycles: 4, exec: func(c *CPU) {}}

	for i, pair := range pairOrder16 {
		i, pair := i, pair
		mainTable[0x01+0x10*i] = opcodeEntry{mnemonic: "LD", cycles: 12, exec: func(c *CPU) {
			c.writeReg16(pair, c.fetch16())
		}}
		mainTable[0x03+0x10*i] = opcodeEntry{mnemonic: "INC", cycles: 8, exec: func(c *CPU) {
			c.writeReg16(pair, c.readReg16(pair)+1)
		}}
		mainTable[0x0B+0x10*i] = opcodeEntry{mnemonic: "DEC", cycles: 8, exec: func(c *CPU) {
			c.writeReg16(pair, c.readReg16(pair)-1)
		}}
		mainTable[0x09+0x10*i] = opcodeEntry{mnemonic: "ADD", cycles: 8, exec: func(c *CPU) {
			c.addHL(c.readReg16(pair))
		}}
	}

	mainTable[0x02] = opcodeEntry{mnemonic: "LD", cycles: 8, exec: func(c *CPU) { c.Bus.Write8(c.Regs.BC(), c.Regs.A) }}
	mainTable[0x12] = opcodeEntry{mnemonic: "LD", cycles: 8, exec: func(c *CPU) { c.Bus.Write8(c.Regs.DE(), c.Regs.A) }}
	mainTable[0x0A] = opcodeEntry{mnemonic: "LD", cycles: 8, exec: func(c *CPU) { c.Regs.A = c.Bus.Read8(c.Regs.BC()) }}
	mainTable[0x1A] = opcodeEntry{mnemonic: "LD", cycles: 8, exec: func(c *CPU) { c.Regs.A = c.Bus.Read8(c.Regs.DE()) }}

	mainTable[0x22] = opcodeEntry{mnemonic: "LD", cycles: 8, exec: func(c *CPU) {
		hl := c.Regs.HL()
		c.Bus.Write8(hl, c.Regs.A)
		c.Regs.SetHL(hl + 1)
	}}
	mainTable[0x2A] = opcodeEntry{mnemonic: "LD", cycles: 8, exec: func(c *CPU) {
		hl := c.Regs.HL()
		c.Regs.A = c.Bus.Read8(hl)
		c.Regs.SetHL(hl + 1)
	}}
	mainTable[0x32] = opcodeEntry{mnemonic: "LD", cycles: 8, exec: func(c *CPU) {
		hl := c.Regs.HL()
		c.Bus.Write8(hl, c.Regs.A)
		c.Regs.SetHL(hl - 1)
	}}
	mainTable[0x3A] = opcodeEntry{mnemonic: "LD", cycles: 8, exec: func(c *CPU) {
		hl := c.Regs.HL()
		c.Regs.A = c.Bus.Read8(hl)
		c.Regs.SetHL(hl - 1)
	}}

	mainTable[0x07] = opcodeEntry{mnemonic: "RLCA", cycles: 4, exec: func(c *CPU) {
		c.rlc(regA)
		c.Regs.SetFlag(FlagZ, false)
	}}
	mainTable[0x0F] = opcodeEntry{mnemonic: "RRCA", cycles: 4, exec: func(c *CPU) {
		c.rrc(regA)
		c.Regs.SetFlag(FlagZ, false)
	}}
	mainTable[0x17] = opcodeEntry{mnemonic: "RLA", cycles: 4, exec: func(c *CPU) {
		c.rl(regA)
		c.Regs.SetFlag(FlagZ, false)
	}}
	mainTable[0x1F] = opcodeEntry{mnemonic: "RRA", cycles: 4, exec: func(c *CPU) {
		c.rr(regA)
		c.Regs.SetFlag(FlagZ, false)
	}}

	mainTable[0x08] = opcodeEntry{mnemonic: "LD", cycles: 20, exec: func(c *CPU) {
		addr := c.fetch16()
		c.write16(addr, c.Regs.SP)
	}}

	mainTable[0x10] = opcodeEntry{mnemonic: "STOP", cycles: 4, exec: func(c *CPU) { c.fetch8() }}

	mainTable[0x18] = opcodeEntry{mnemonic: "JR", cycles: 12, exec: func(c *CPU) {
		e := int8(c.fetch8())
		c.Regs.PC = uint16(int32(c.Regs.PC) + int32(e))
	}}
	for i := uint8(0); i < 4; i++ {
		i := i
		opcode := uint8(0x20 + 8*i)
		mainTable[opcode] = opcodeEntry{mnemonic: "JR", cycles: 8, branchCycles: 12, exec: func(c *CPU) {
			e := int8(c.fetch8())
			if cond(c, i) {
				c.Regs.PC = uint16(int32(c.Regs.PC) + int32(e))
				c.branchTaken = true
			}
		}}
	}

	mainTable[0x27] = opcodeEntry{mnemonic: "DAA", cycles: 4, exec: func(c *CPU) { c.daa() }}
	mainTable[0x2F] = opcodeEntry{mnemonic: "CPL", cycles: 4, exec: func(c *CPU) { c.cpl() }}
	mainTable[0x37] = opcodeEntry{mnemonic: "SCF", cycles: 4, exec: func(c *CPU) { c.scf() }}
	mainTable[0x3F] = opcodeEntry{mnemonic: "CCF", cycles: 4, exec: func(c *CPU) { c.ccf() }}

	for i, pair := range stackPairOrder {
		i, pair := i, pair
		mainTable[0xC1+0x10*i] = opcodeEntry{mnemonic: "POP", cycles: 12, exec: func(c *CPU) {
			c.writeReg16(pair, c.pop16())
		}}
		mainTable[0xC5+0x10*i] = opcodeEntry{mnemonic: "PUSH", cycles: 16, exec: func(c *CPU) {
			c.push16(c.readReg16(pair))
		}}
	}

	for i := uint8(0); i < 4; i++ {
		i := i
		mainTable[0xC2+8*i] = opcodeEntry{mnemonic: "JP", cycles: 12, branchCycles: 16, exec: func(c *CPU) {
			addr := c.fetch16()
			if cond(c, i) {
				c.Regs.PC = addr
				c.branchTaken = true
			}
		}}
		mainTable[0xC4+8*i] = opcodeEntry{mnemonic: "CALL", cycles: 12, branchCycles: 24, exec: func(c *CPU) {
			addr := c.fetch16()
			if cond(c, i) {
				c.push16(c.Regs.PC)
				c.Regs.PC = addr
				c.branchTaken = true
			}
		}}
		mainTable[0xC0+8*i] = opcodeEntry{mnemonic: "RET", cycles: 8, branchCycles: 20, exec: func(c *CPU) {
			if cond(c, i) {
				c.Regs.PC = c.pop16()
				c.branchTaken = true
			}
		}}
	}
	mainTable[0xC3] = opcodeEntry{mnemonic: "JP", cycles: 16, exec: func(c *CPU) { c.Regs.PC = c.fetch16() }}
	mainTable[0xE9] = opcodeEntry{mnemonic: "JP (HL)", cycles: 4, exec: func(c *CPU) { c.Regs.PC = c.Regs.HL() }}
	mainTable[0xCD] = opcodeEntry{mnemonic: "CALL", cycles: 24, exec: func(c *CPU) {
		addr := c.fetch16()
		c.push16(c.Regs.PC)
		c.Regs.PC = addr
	}}
	mainTable[0xC9] = opcodeEntry{mnemonic: "RET", cycles: 16, exec: func(c *CPU) { c.Regs.PC = c.pop16() }}
	mainTable[0xD9] = opcodeEntry{mnemonic: "RETI", cycles: 16, exec: func(c *CPU) {
		c.Regs.PC = c.pop16()
		c.ime = true
		c.imePending = false
	}}

	immOps := []struct {
		opcode uint8
		name   string
		fn     func(c *CPU, v uint8)
	}{
		{0xC6, "ADD", func(c *CPU, v uint8) { c.add8(v, false) }},
		{0xCE, "ADC", func(c *CPU, v uint8) { c.add8(v, true) }},
		{0xD6, "SUB", func(c *CPU, v uint8) { c.sub8(v, false) }},
		{0xDE, "SBC", func(c *CPU, v uint8) { c.sub8(v, true) }},
		{0xE6, "AND", func(c *CPU, v uint8) { c.and8(v) }},
		{0xEE, "XOR", func(c *CPU, v uint8) { c.xor8(v) }},
		{0xF6, "OR", func(c *CPU, v uint8) { c.or8(v) }},
		{0xFE, "CP", func(c *CPU, v uint8) { c.cp8(v) }},
	}
	for _, op := range immOps {
		op := op
		mainTable[op.opcode] = opcodeEntry{mnemonic: op.name, cycles: 8, exec: func(c *CPU) {
			op.fn(c, c.fetch8())
		}}
	}

	for i := uint8(0); i < 8; i++ {
		i := i
		vector := uint16(i) * 8
		mainTable[0xC7+8*i] = opcodeEntry{mnemonic: "RST", cycles: 16, exec: func(c *CPU) {
			c.push16(c.Regs.PC)
			c.Regs.PC = vector
		}}
	}

	mainTable[0xE0] = opcodeEntry{mnemonic: "LDH", cycles: 12, exec: func(c *CPU) {
		offset := c.fetch8()
		c.Bus.Write8(0xFF00+uint16(offset), c.Regs.A)
	}}
	mainTable[0xF0] = opcodeEntry{mnemonic: "LDH", cycles: 12, exec: func(c *CPU) {
		offset := c.fetch8()
		c.Regs.A = c.Bus.Read8(0xFF00 + uint16(offset))
	}}
	mainTable[0xE2] = opcodeEntry{mnemonic: "LD", cycles: 8, exec: func(c *CPU) {
		c.Bus.Write8(0xFF00+uint16(c.Regs.C), c.Regs.A)
	}}
	mainTable[0xF2] = opcodeEntry{mnemonic: "LD", cycles: 8, exec: func(c *CPU) {
		c.Regs.A = c.Bus.Read8(0xFF00 + uint16(c.Regs.C))
	}}
	mainTable[0xEA] = opcodeEntry{mnemonic: "LD", cycles: 16, exec: func(c *CPU) {
		c.Bus.Write8(c.fetch16(), c.Regs.A)
	}}
	mainTable[0xFA] = opcodeEntry{mnemonic: "LD", cycles: 16, exec: func(c *CPU) {
		c.Regs.A = c.Bus.Read8(c.fetch16())
	}}

	mainTable[0xE8] = opcodeEntry{mnemonic: "ADD", cycles: 16, exec: func(c *CPU) {
		e := int8(c.fetch8())
		c.Regs.SP = c.addSPSigned(e)
	}}
	mainTable[0xF8] = opcodeEntry{mnemonic: "LD", cycles: 12, exec: func(c *CPU) {
		e := int8(c.fetch8())
		c.Regs.SetHL(c.addSPSigned(e))
	}}
	mainTable[0xF9] = opcodeEntry{mnemonic: "LD", cycles: 8, exec: func(c *CPU) { c.Regs.SP = c.Regs.HL() }}

	mainTable[0xF3] = opcodeEntry{mnemonic: "DI", cycles: 4, exec: func(c *CPU) { c.di() }}
	mainTable[0xFB] = opcodeEntry{mnemonic: "EI", cycles: 4, exec: func(c *CPU) { c.requestEI() }}

	// Undefined opcodes are left with exec == nil: Step() locks the CPU
	// when one is fetched, per the illegal-opcode behavior real hardware
	// exhibits.
}
