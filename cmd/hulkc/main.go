/*
Hulkc compiles HULK source files to LLVM IR, or drives an interactive
type-checking REPL over one expression at a time.

Usage:

	hulkc [flags] [compile|repl|print-table] [FILE]

If no subcommand is given, "compile" is assumed. FILE defaults to the
entry file named in hulkc.toml (or "main.hulk" if there is no project
file).

The flags are:

	-v, --version
		Print the compiler version and exit.

	-c, --config FILE
		Project config file to load. Defaults to "hulkc.toml" in the
		current directory; a missing file is not an error.

	-o, --output FILE
		Where to write the generated LLVM IR for the "compile"
		subcommand. Defaults to FILE with its extension replaced by
		".ll".

	--cache-dir DIR
		Directory tablecache uses to persist built lexer/parser tables
		across invocations, keyed by a fingerprint of the grammar and
		lex rule definitions. Defaults to the value in hulkc.toml, or
		".hulkc-cache".

	--emit-tokens
		Print the token stream for FILE instead of compiling it.

	--trace
		Print one line per parser shift/reduce step to stderr.

	--print-table
		With "compile" or on its own via the "print-table" subcommand,
		print the constructed LALR(1) action/goto table instead of (or
		before) compiling.

Once a session has started with "repl", each line is parsed as a single
expression, type-checked against a fresh global scope, and the inferred
type is printed. Type errors are reported the same way a compile's would
be. To exit the REPL, send EOF (Ctrl-D).
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/hulkc/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad flags or arguments.
	ExitUsageError

	// ExitCompileError indicates the input failed to lex, parse, or
	// type-check.
	ExitCompileError

	// ExitInitError indicates a problem setting up the compiler itself
	// (config, cache, codegen) unrelated to the input source.
	ExitInitError
)

var (
	returnCode = ExitSuccess

	flagVersion    = pflag.BoolP("version", "v", false, "Print the compiler version and exit")
	flagConfigFile = pflag.StringP("config", "c", "hulkc.toml", "Project config file to load")
	flagOutput     = pflag.StringP("output", "o", "", "Where to write the generated LLVM IR")
	flagCacheDir   = pflag.String("cache-dir", "", "Directory for the built lexer/parser table cache")
	flagEmitTokens = pflag.Bool("emit-tokens", false, "Print the token stream instead of compiling")
	flagTrace      = pflag.Bool("trace", false, "Print one line per parser step to stderr")
	flagPrintTable = pflag.Bool("print-table", false, "Print the LALR(1) action/goto table")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("hulkc %s\n", version.Current)
		return
	}

	cfg, err := loadConfig(*flagConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: loading %s: %s\n", *flagConfigFile, err)
		returnCode = ExitInitError
		return
	}
	if pflag.Lookup("cache-dir").Changed {
		cfg.CacheDir = *flagCacheDir
	}
	if pflag.Lookup("print-table").Changed {
		cfg.PrintTable = *flagPrintTable
	}

	args := pflag.Args()
	sub := "compile"
	rest := args
	if len(args) > 0 {
		switch args[0] {
		case "compile", "repl", "print-table":
			sub = args[0]
			rest = args[1:]
		}
	}

	entry := cfg.Entry
	if len(rest) > 0 {
		entry = rest[0]
	}

	switch sub {
	case "compile":
		returnCode = runCompile(cfg, entry, *flagOutput, *flagEmitTokens, *flagTrace)
	case "repl":
		returnCode = runRepl()
	case "print-table":
		returnCode = runPrintTable()
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\nDo -h for help.\n", sub)
		returnCode = ExitUsageError
	}
}
