/*
Wlp4gen compiles a WLP4 source program to MIPS-like assembly text.

Usage:

	wlp4gen [flags] < source.wlp4 > source.asm

Wlp4gen reads a WLP4 program from stdin, scans it, builds a parse tree with
the bundled (or configured) grammar and SLR(1) tables, collects and
type-checks every declared procedure, and emits MIPS assembly text to
stdout. Diagnostics and compile errors go to stderr.

The flags are:

	-c, --config FILE
		Load configuration from FILE instead of the default
		".wlp4toolchain.toml". See internal/config.Config for the
		settings a config file may carry.

	--trace-tokens
		Print every scanned token to stderr as it is produced.

	--trace-parse
		Print every shift/reduce action to stderr as the parser drives
		the SLR(1) table.

	--dump-tree
		Print the finished parse tree to stderr before code generation.

	--dump-table
		Print the loaded SLR(1) table to stderr before parsing.

Exit codes: 0 success, 1 compile error (lex/parse/semantic), 2 resource or
configuration load failure.
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
	"github.com/rheo5/WLP4-compiler/internal/grammar"
	"github.com/rheo5/WLP4-compiler/internal/parse"
	"github.com/rheo5/WLP4-compiler/internal/resources"
	"github.com/rheo5/WLP4-compiler/internal/scan"
	"github.com/rheo5/WLP4-compiler/internal/token"
	"github.com/rheo5/WLP4-compiler/internal/wlp4"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates the program compiled cleanly.
	ExitSuccess = iota
	// ExitCompileError indicates a lex, parse, or semantic error.
	ExitCompileError
	// ExitLoadError indicates a resource or config load failure.
	ExitLoadError
)

var (
	returnCode  = ExitSuccess
	flagConfig  = pflag.StringP("config", "c", config.DefaultPath, "Load configuration from FILE")
	flagTokens  = pflag.Bool("trace-tokens", false, "Print every scanned token to stderr")
	flagParse   = pflag.Bool("trace-parse", false, "Print every shift/reduce action to stderr")
	flagDump    = pflag.Bool("dump-tree", false, "Print the finished parse tree to stderr")
	flagTable   = pflag.Bool("dump-table", false, "Print the loaded SLR(1) table to stderr")
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
	if *flagParse {
		cfg.TraceParse = true
	}
	if *flagDump {
		cfg.DumpTree = true
	}
	if *flagTable {
		cfg.DumpTable = true
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
			returnCode = ExitCompileError
		}
		return
	}
}

func run(src string, cfg config.Config, out io.Writer, diag io.Writer) error {
	dfaText := resources.WLP4DFA()
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

	toks, err := scan.Scan(d, src, scan.Options{Reclassify: wlp4.Reclassify, InsertNewlines: false})
	if err != nil {
		return err
	}
	if cfg.TraceTokens {
		for _, t := range toks {
			fmt.Fprintf(diag, "%s\n", t.String())
		}
	}

	cfgText := resources.DemoCFG()
	if cfg.CFGFile != "" {
		b, err := os.ReadFile(cfg.CFGFile)
		if err != nil {
			return compileerr.Loader("reading %s: %v", cfg.CFGFile, err)
		}
		cfgText = string(b)
	}
	g, err := grammar.Load(cfgText)
	if err != nil {
		return err
	}

	transText := resources.DemoTransitions()
	if cfg.TransFile != "" {
		b, err := os.ReadFile(cfg.TransFile)
		if err != nil {
			return compileerr.Loader("reading %s: %v", cfg.TransFile, err)
		}
		transText = string(b)
	}
	reduceText := resources.DemoReductions()
	if cfg.ReduceFile != "" {
		b, err := os.ReadFile(cfg.ReduceFile)
		if err != nil {
			return compileerr.Loader("reading %s: %v", cfg.ReduceFile, err)
		}
		reduceText = string(b)
	}
	table, err := parse.Load(g, transText, reduceText)
	if err != nil {
		return err
	}
	if cfg.DumpTable {
		fmt.Fprintln(diag, table.String())
	}

	augmented := make([]token.Token, 0, len(toks)+3)
	augmented = append(augmented, token.New(token.BOF, "BOF", 0, 0))
	augmented = append(augmented, toks...)
	augmented = append(augmented, token.New(token.EOF, "EOF", 0, 0))
	augmented = append(augmented, token.New(token.NewClass(token.Accept), token.Accept, 0, 0))

	var tracer func(string)
	if cfg.TraceParse {
		tracer = func(msg string) { fmt.Fprintln(diag, msg) }
	}
	root, err := parse.ParseTraced(g, table, token.NewStream(augmented), tracer)
	if err != nil {
		return err
	}
	if cfg.DumpTree {
		fmt.Fprintln(diag, root.String())
	}

	procs, err := wlp4.CollectProcedures(root)
	if err != nil {
		return err
	}

	procNodes, err := wlp4.CollectProcedureNodes(root)
	if err != nil {
		return err
	}
	if err := wlp4.AnnotateProgram(procs, procNodes); err != nil {
		return err
	}

	return wlp4.Generate(out, root, procs)
}
