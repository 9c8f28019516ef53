package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/hulkc/internal/codegen"
	"github.com/dekarrin/hulkc/internal/hulklang"
	"github.com/dekarrin/hulkc/internal/lex"
	"github.com/dekarrin/hulkc/internal/sema"
	"github.com/dekarrin/hulkc/internal/tablecache"
)

// loadFrontend returns a hulklang.Frontend, restoring it from cacheDir's
// tablecache entry when the grammar/lexer fingerprint is already present
// and building (then storing) a fresh one on a miss. This is the "allocate
// the automata and tables once, then reuse them" guarantee extended across
// process invocations.
func loadFrontend(cacheDir string) (*hulklang.Frontend, error) {
	grammarSrc, lexSrc := hulklang.Sources()
	fp, err := tablecache.Fingerprint(grammarSrc, lexSrc)
	if err != nil {
		return nil, fmt.Errorf("fingerprinting grammar/lexer: %w", err)
	}

	cache := tablecache.New(cacheDir)
	lx, table, ok, err := cache.Load(fp)
	if err != nil {
		return nil, fmt.Errorf("loading table cache: %w", err)
	}
	if ok {
		return hulklang.NewFrontendFromCache(lx, table)
	}

	fe, err := hulklang.NewFrontend()
	if err != nil {
		return nil, err
	}
	if err := cache.Store(fp, fe.Lex, fe.Parser.Table()); err != nil {
		return nil, fmt.Errorf("writing table cache: %w", err)
	}
	return fe, nil
}

func runCompile(cfg Config, entry, output string, emitTokens, trace bool) int {
	src, err := os.ReadFile(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitInitError
	}

	fe, err := loadFrontend(cfg.CacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitInitError
	}

	if emitTokens {
		return emitTokenStream(fe, string(src))
	}

	if trace {
		fe.Parser.RegisterTraceListener(func(s string) {
			fmt.Fprintln(os.Stderr, s)
		})
	}

	if cfg.PrintTable {
		fmt.Println(fe.Parser.Table().String())
	}

	prog, err := fe.ParseString(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s: %s\n", entry, err)
		return ExitCompileError
	}

	analyzer := sema.NewAnalyzer()
	annotated, bag := analyzer.Analyze(prog)
	if bag.Len() > 0 {
		fmt.Fprint(os.Stderr, bag.String())
	}
	if bag.HasErrors() {
		return ExitCompileError
	}

	gen := codegen.NewGenerator(analyzer.Types())
	ir, err := gen.Generate(annotated)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: codegen: %s\n", err)
		return ExitInitError
	}
	if cfg.Target != "" {
		ir = fmt.Sprintf("target triple = %q\n\n%s", cfg.Target, ir)
	}

	out := output
	if out == "" {
		out = outputPathFor(entry)
	}
	if err := os.WriteFile(out, []byte(ir), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: writing %s: %s\n", out, err)
		return ExitInitError
	}
	return ExitSuccess
}

// outputPathFor replaces entry's extension with ".ll", or appends it if
// entry has no extension.
func outputPathFor(entry string) string {
	if dot := strings.LastIndexByte(entry, '.'); dot > strings.LastIndexByte(entry, '/') {
		return entry[:dot] + ".ll"
	}
	return entry + ".ll"
}

func emitTokenStream(fe *hulklang.Frontend, src string) int {
	stream, err := fe.Lex.Lex(strings.NewReader(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitCompileError
	}
	for stream.HasNext() {
		tok := stream.Next()
		if tok.Class().Equal(lex.ClassEndOfText) {
			break
		}
		fmt.Printf("%d:%d %-12s %q\n", tok.Line(), tok.LinePos(), tok.Class().ID(), tok.Lexeme())
	}
	return ExitSuccess
}

func runPrintTable() int {
	fe, err := hulklang.NewFrontend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitInitError
	}
	fmt.Println(fe.Parser.Table().String())
	return ExitSuccess
}
