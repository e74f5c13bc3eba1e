package main

import (
	"flag"
	"fmt"
	"os"

	"nitro-core-dx/internal/cartridge"
	"nitro-core-dx/internal/config"
	"nitro-core-dx/internal/cpu"
	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/emulator"
	"nitro-core-dx/internal/ui"
)

var componentsByName = map[string]debug.Component{
	"cpu":    debug.ComponentCPU,
	"ppu":    debug.ComponentPPU,
	"apu":    debug.ComponentAPU,
	"memory": debug.ComponentMemory,
	"timer":  debug.ComponentTimer,
	"mapper": debug.ComponentMapper,
	"joypad": debug.ComponentJoypad,
	"system": debug.ComponentSystem,
}

func main() {
	romPath := flag.String("rom", "", "Path to ROM file")
	configPath := flag.String("config", config.DefaultPath(), "Path to TOML config file")
	scale := flag.Int("scale", 0, "Display scale (1-6, overrides config)")
	enableLogging := flag.Bool("log", false, "Enable logging (disabled by default)")
	flag.Parse()

	if *romPath == "" {
		fmt.Println("Usage: nitro-core-dx -rom <path-to-rom>")
		fmt.Println("  -rom <path>      Path to ROM file (.gb)")
		fmt.Println("  -config <path>   Path to TOML config file")
		fmt.Println("  -scale <1-6>     Display scale (overrides config)")
		fmt.Println("  -log             Enable logging (disabled by default)")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}

	displayScale := cfg.Scale
	if *scale != 0 {
		displayScale = *scale
	}
	if displayScale < 1 || displayScale > 6 {
		fmt.Fprintf(os.Stderr, "Error: scale must be between 1 and 6\n")
		os.Exit(1)
	}

	romData, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ROM file: %v\n", err)
		os.Exit(1)
	}

	mapperOverride := ""
	if len(cfg.MapperOverride) > 0 {
		if header, err := cartridge.ParseHeader(romData); err == nil {
			mapperOverride = cfg.MapperOverride[header.Title]
		}
	}

	var machine *emulator.Machine
	if *enableLogging {
		logger := debug.NewLogger(10000)
		enabledAny := false
		for _, name := range cfg.LogComponents {
			if c, ok := componentsByName[name]; ok {
				logger.SetComponentEnabled(c, true)
				enabledAny = true
			}
		}
		if !enabledAny {
			for _, c := range componentsByName {
				logger.SetComponentEnabled(c, true)
			}
		}

		machine, err = emulator.NewWithMapperOverride(romData, logger, mapperOverride)
		if err == nil {
			if adapter, ok := machine.CPU.Logger.(*cpu.LoggerAdapter); ok {
				adapter.SetLevel(cpu.LogInstructions)
			}
		}
	} else {
		machine, err = emulator.NewWithMapperOverride(romData, debug.NewLogger(10000), mapperOverride)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("nitro-core-dx")
	fmt.Println("=============")
	fmt.Printf("ROM loaded: %s\n", *romPath)
	fmt.Printf("Display scale: %dx\n", displayScale)
	fmt.Println("\nControls:")
	fmt.Println("  Arrow Keys - D-pad")
	fmt.Println("  Z - A button")
	fmt.Println("  X - B button")
	fmt.Println("  Enter - Start")
	fmt.Println("  Right Shift - Select")
	fmt.Println("  Ctrl+R - Reset")
	fmt.Println("  ESC - Quit")

	uiInstance, err := ui.NewUIWithKeyBindings(machine, displayScale, cfg.KeyBindings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating UI: %v\n", err)
		os.Exit(1)
	}

	if err := uiInstance.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "UI error: %v\n", err)
		os.Exit(1)
	}
}
