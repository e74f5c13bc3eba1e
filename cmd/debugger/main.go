// Command debugger is an interactive line-oriented front end for stepping
// a Machine instruction by instruction, inspecting registers, memory, and
// the PPU's OAM, and managing breakpoints and watch expressions.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/emulator"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: debugger <rom-file>")
		os.Exit(1)
	}

	rom, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read rom: %v\n", err)
		os.Exit(1)
	}

	logger := debug.NewLogger(10000)
	m, err := emulator.NewWithLogger(rom, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load cartridge: %v\n", err)
		os.Exit(1)
	}

	dbg := debug.NewDebugger()
	dbg.Pause()

	fmt.Printf("loaded %s (%d bytes)\n", os.Args[1], len(rom))
	printStatus(m)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("(dbg) ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		args := fields[1:]

		switch cmd {
		case "step", "s":
			count := 1
			if len(args) > 0 {
				if n, err := strconv.Atoi(args[0]); err == nil {
					count = n
				}
			}
			runInstructions(m, dbg, count, true)

		case "continue", "c":
			dbg.Resume()
			runUntilBreak(m, dbg)

		case "break", "b":
			if len(args) != 1 {
				fmt.Println("usage: break <addr>")
				continue
			}
			addr, err := parseAddr(args[0])
			if err != nil {
				fmt.Println(err)
				continue
			}
			dbg.SetBreakpoint(addr)
			fmt.Printf("breakpoint set at $%04X\n", addr)

		case "delete", "d":
			if len(args) != 1 {
				fmt.Println("usage: delete <addr>")
				continue
			}
			addr, err := parseAddr(args[0])
			if err != nil {
				fmt.Println(err)
				continue
			}
			if dbg.RemoveBreakpoint(addr) {
				fmt.Printf("breakpoint at $%04X removed\n", addr)
			} else {
				fmt.Println("no breakpoint at that address")
			}

		case "breakpoints", "bl":
			for addr, bp := range dbg.GetAllBreakpoints() {
				state := "enabled"
				if !bp.Enabled {
					state = "disabled"
				}
				fmt.Printf("  $%04X  %s  hits=%d\n", addr, state, bp.HitCount)
			}

		case "watch", "w":
			if len(args) != 1 {
				fmt.Println("usage: watch <addr>")
				continue
			}
			dbg.AddWatch(args[0])
			fmt.Printf("watching %s\n", args[0])

		case "watches":
			printWatches(m, dbg)

		case "registers", "r", "regs":
			printRegisters(m)

		case "mem", "x":
			if len(args) < 1 {
				fmt.Println("usage: mem <addr> [count]")
				continue
			}
			addr, err := parseAddr(args[0])
			if err != nil {
				fmt.Println(err)
				continue
			}
			count := 16
			if len(args) > 1 {
				if n, err := strconv.Atoi(args[1]); err == nil {
					count = n
				}
			}
			printMemory(m, addr, count)

		case "stack":
			printStack(m)

		case "oam":
			printOAM(m)

		case "ppu":
			printPPU(m)

		case "frame":
			if err := m.StepUntilVBlank(); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			printStatus(m)

		case "status":
			printStatus(m)

		case "help", "h", "?":
			printHelp()

		case "quit", "q", "exit":
			return

		default:
			fmt.Printf("unknown command %q (try 'help')\n", cmd)
		}
	}
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint16(v), nil
}

// runInstructions single-steps count instructions, printing each retired
// PC and breaking early if a breakpoint fires partway through the run.
func runInstructions(m *emulator.Machine, dbg *debug.Debugger, count int, verbose bool) {
	for i := 0; i < count; i++ {
		pc := m.CPU.Regs.PC
		if i > 0 && dbg.CheckBreakpoint(pc) {
			fmt.Printf("breakpoint hit at $%04X\n", pc)
			break
		}
		if _, err := m.StepOne(); err != nil {
			fmt.Printf("error at $%04X: %v\n", pc, err)
			return
		}
		if verbose {
			fmt.Printf("  $%04X\n", pc)
		}
	}
	printRegisters(m)
}

// runUntilBreak runs freely until a breakpoint address is hit or the CPU
// locks on an illegal opcode.
func runUntilBreak(m *emulator.Machine, dbg *debug.Debugger) {
	for {
		pc := m.CPU.Regs.PC
		if dbg.CheckBreakpoint(pc) {
			fmt.Printf("breakpoint hit at $%04X\n", pc)
			dbg.Pause()
			printRegisters(m)
			return
		}
		if _, err := m.StepOne(); err != nil {
			fmt.Printf("stopped at $%04X: %v\n", pc, err)
			dbg.Pause()
			printRegisters(m)
			return
		}
	}
}

func printRegisters(m *emulator.Machine) {
	r := m.CPU.Regs
	fmt.Printf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X IME=%v halted=%v\n",
		r.AF(), r.BC(), r.DE(), r.HL(), r.SP, r.PC, m.CPU.IME(), m.CPU.Halted())
}

func printMemory(m *emulator.Machine, addr uint16, count int) {
	for i := 0; i < count; i += 16 {
		fmt.Printf("$%04X: ", addr+uint16(i))
		for j := 0; j < 16 && i+j < count; j++ {
			fmt.Printf("%02X ", m.Bus.Read8(addr+uint16(i+j)))
		}
		fmt.Println()
	}
}

func printStack(m *emulator.Machine) {
	sp := m.CPU.Regs.SP
	fmt.Printf("SP=$%04X\n", sp)
	for i := uint16(0); i < 16 && sp+i >= sp; i += 2 {
		addr := sp + i
		lo := m.Bus.Read8(addr)
		hi := m.Bus.Read8(addr + 1)
		fmt.Printf("  $%04X: %04X\n", addr, uint16(lo)|uint16(hi)<<8)
	}
}

func printOAM(m *emulator.Machine) {
	for i := 0; i < 40; i++ {
		base := i * 4
		y := m.PPU.OAM[base]
		x := m.PPU.OAM[base+1]
		tile := m.PPU.OAM[base+2]
		attr := m.PPU.OAM[base+3]
		if y == 0 || y >= 160 {
			continue
		}
		fmt.Printf("  sprite %2d: y=%3d x=%3d tile=$%02X attr=$%02X\n", i, y, x, tile, attr)
	}
}

func printPPU(m *emulator.Machine) {
	fmt.Printf("LCDC=%02X STAT=%02X LY=%d LYC=%d SCX=%d SCY=%d WX=%d WY=%d mode=%d dot=%d frame=%d\n",
		m.PPU.LCDC, m.PPU.STAT, m.PPU.LY, m.PPU.LYC, m.PPU.SCX, m.PPU.SCY, m.PPU.WX, m.PPU.WY,
		m.PPU.Mode(), m.PPU.GetDot(), m.PPU.FrameCounter())
}

func printWatches(m *emulator.Machine, dbg *debug.Debugger) {
	for i, w := range dbg.GetWatches() {
		if addr, err := parseAddr(w.Expression); err == nil {
			fmt.Printf("  [%d] %s = $%02X\n", i, w.Expression, m.Bus.Read8(addr))
			continue
		}
		fmt.Printf("  [%d] %s\n", i, w.Expression)
	}
}

func printStatus(m *emulator.Machine) {
	printRegisters(m)
	printPPU(m)
}

func printHelp() {
	fmt.Println(`commands:
  step [n], s [n]      execute n instructions (default 1)
  continue, c          run until a breakpoint is hit
  break <addr>, b      set a breakpoint at a flat address
  delete <addr>, d     remove a breakpoint
  breakpoints, bl      list breakpoints
  watch <addr>, w      watch a memory address
  watches              print current watch values
  registers, r         print CPU registers
  mem <addr> [n], x    dump n bytes starting at addr
  stack                dump a few words above SP
  oam                  list active sprites
  ppu                  print PPU register and timing state
  frame                run until the next VBlank
  status               print registers and PPU state
  quit, q              exit`)
}
