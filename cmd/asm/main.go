package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	ncasm "nitro-core-dx/internal/asm"
)

func main() {
	title := flag.String("title", "ROM", "cartridge title (max 16 chars)")
	flag.Parse()
	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [--title NAME] <input.asm> <output.gb>\n", os.Args[0])
		os.Exit(1)
	}
	in := flag.Arg(0)
	out := flag.Arg(1)
	res, err := ncasm.AssembleFile(in, &ncasm.Options{Title: *title, OutputPath: out})
	if err != nil {
		fmt.Fprintf(os.Stderr, "assembler error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("assembled %s -> %s (%d bytes, %d labels)\n", filepath.Base(in), filepath.Base(out), len(res.ROMBytes), len(res.Labels))
}
