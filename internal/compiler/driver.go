package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/vasc/internal/compiler/brackets"
	"github.com/arnavsurve/vasc/internal/compiler/diag"
	"github.com/arnavsurve/vasc/internal/compiler/emitter"
	"github.com/arnavsurve/vasc/internal/compiler/lexer"
)

const (
	SourceExt     = ".vasc"
	DefaultSource = "index" + SourceExt
	DefaultOutput = "./tmp.vasm"
)

type Options struct {
	// StripComments drops the trailing `// ... //` annotation of every line.
	StripComments bool
}

type Result struct {
	Output   string
	Warnings []diag.Warning
}

// Compile runs the lexer, bracket resolver and code generator over src.
// It performs no I/O.
func Compile(src string, opts Options) (*Result, error) {
	tokens, warnings, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}

	pairs, err := brackets.Resolve(tokens)
	if err != nil {
		return nil, err
	}

	em := emitter.NewEmitter(emitter.NewContext())
	out, err := em.Emit(tokens, pairs)
	if err != nil {
		return nil, err
	}

	if opts.StripComments {
		out = stripComments(out)
	}
	return &Result{Output: out, Warnings: warnings}, nil
}

// CompileAndWrite compiles srcPath and writes the instructions to outPath.
// Nothing is written when compilation fails.
func CompileAndWrite(srcPath, outPath string, opts Options) (*Result, error) {
	if err := validateExtension(srcPath); err != nil {
		return nil, err
	}

	content, err := readSource(srcPath)
	if err != nil {
		return nil, err
	}

	res, err := Compile(content, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", srcPath, err)
	}

	if err := writeOutput(res.Output, outPath); err != nil {
		return nil, err
	}
	return res, nil
}

func validateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("source must have %s extension", SourceExt)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	return string(b), nil
}

func writeOutput(out, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func stripComments(out string) string {
	lines := strings.SplitAfter(out, "\n")
	var b strings.Builder
	for _, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			b.WriteString(strings.TrimRight(line[:idx], " "))
			b.WriteString("\n")
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}
