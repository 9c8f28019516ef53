package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/hulklang"
	"github.com/dekarrin/hulkc/internal/sema"
)

// runRepl lexes, parses, and type-checks one top-level expression per line,
// printing its inferred type. Each line gets a fresh Analyzer, so bindings
// from one line are not visible to the next; this is a type-checking
// scratchpad, not a stateful session.
func runRepl() int {
	fe, err := hulklang.NewFrontend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitInitError
	}

	rl, err := readline.NewEx(&readline.Config{Prompt: "hulk> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not start readline: %s\n", err)
		return ExitInitError
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return ExitInitError
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		typ, evalErr := replType(fe, line)
		if evalErr != nil {
			fmt.Fprintf(os.Stderr, "%s\n", evalErr)
			continue
		}
		fmt.Println(typ)
	}
}

// replType wraps src in a LetIn so pass 3 resolves and stores its type on
// an Info slot we can read back, then parses and type-checks it through a
// fresh Analyzer.
func replType(fe *hulklang.Frontend, src string) (string, error) {
	line := strings.TrimSuffix(src, ";")
	wrapped := fmt.Sprintf("let __repl_value = (%s) in __repl_value;", line)

	prog, err := fe.ParseString(wrapped)
	if err != nil {
		return "", err
	}

	analyzer := sema.NewAnalyzer()
	annotated, bag := analyzer.Analyze(prog)
	if bag.HasErrors() {
		return "", errors.New(bag.String())
	}
	if len(annotated.Expressions) != 1 {
		return "", fmt.Errorf("expected a single expression, got %d", len(annotated.Expressions))
	}

	letIn, ok := annotated.Expressions[0].(*ast.LetIn)
	if !ok {
		return "", fmt.Errorf("internal error: expected LetIn wrapper, got %T", annotated.Expressions[0])
	}
	return letIn.Info.Type.String(), nil
}
