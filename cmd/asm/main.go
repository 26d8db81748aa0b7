/*
Asm assembles MIPS-like assembly text to raw machine code.

Usage:

	asm [flags] < source.asm > source.mips

Asm reads assembly source from stdin, scans it, validates every
instruction and builds the label symbol table in a first pass, then
encodes each instruction to a big-endian 32-bit word in a second pass,
writing the resulting bytes to stdout. Diagnostics and assembly errors go
to stderr.

The flags are:

	-c, --config FILE
		Load configuration from FILE instead of the default
		".wlp4toolchain.toml".

	--trace-tokens
		Print every scanned token to stderr as it is produced.

Exit codes: 0 success, 1 assembly error, 2 resource or configuration load
failure.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rheo5/WLP4-compiler/internal/compileerr"
	"github.com/rheo5/WLP4-compiler/internal/config"
	"github.com/rheo5/WLP4-compiler/internal/dfa"
	"github.com/rheo5/WLP4-compiler/internal/mips"
	"github.com/rheo5/WLP4-compiler/internal/resources"
	"github.com/rheo5/WLP4-compiler/internal/scan"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates the program assembled cleanly.
	ExitSuccess = iota
	// ExitAsmError indicates a syntax, range, or symbol-table error.
	ExitAsmError
	// ExitLoadError indicates a resource or config load failure.
	ExitLoadError
)

var (
	returnCode = ExitSuccess
	flagConfig = pflag.StringP("config", "c", config.DefaultPath, "Load configuration from FILE")
	flagTokens = pflag.Bool("trace-tokens", false, "Print every scanned token to stderr")
)

func main() {
	defer func() {
		if p := recover(); p != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", p))
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitLoadError
		return
	}
	if *flagTokens {
		cfg.TraceTokens = true
	}

	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading stdin: %s\n", err.Error())
		returnCode = ExitLoadError
		return
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if err := run(string(src), cfg, out, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		if kind, ok := compileerr.KindOf(err); ok && kind == compileerr.KindLoader {
			returnCode = ExitLoadError
		} else {
			returnCode = ExitAsmError
		}
		return
	}
}

func run(src string, cfg config.Config, out io.Writer, diag io.Writer) error {
	dfaText := resources.AsmDFA()
	if cfg.DFAFile != "" {
		b, err := os.ReadFile(cfg.DFAFile)
		if err != nil {
			return compileerr.Loader("reading %s: %v", cfg.DFAFile, err)
		}
		dfaText = string(b)
	}
	d, err := dfa.Load(strings.NewReader(dfaText))
	if err != nil {
		return err
	}

	toks, err := scan.Scan(d, src, scan.Options{Reclassify: mips.Reclassify, InsertNewlines: true})
	if err != nil {
		return err
	}
	if cfg.TraceTokens {
		for _, t := range toks {
			fmt.Fprintf(diag, "%s\n", t.String())
		}
	}

	symtab, err := mips.FirstPass(toks)
	if err != nil {
		return err
	}

	return mips.SecondPass(out, toks, symtab)
}
