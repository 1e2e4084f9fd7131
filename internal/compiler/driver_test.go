package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnavsurve/vasc/internal/compiler/diag"
)

const testsDir = "../../tests"

func TestGoldenGood(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(testsDir, "good", "*.vasc"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no good test files found under %s", testsDir)
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), SourceExt)
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("reading %s: %v", file, err)
			}
			expected, err := os.ReadFile(filepath.Join(testsDir, "good", "expected", name+".vasm"))
			if err != nil {
				t.Fatalf("missing expected output: %v", err)
			}

			res, err := Compile(string(src), Options{})
			if err != nil {
				t.Fatalf("Compile() unexpected error: %v", err)
			}
			if res.Output != string(expected) {
				t.Fatalf("output mismatch\nexpected:\n%s\ngot:\n%s", expected, res.Output)
			}
		})
	}
}

func TestGoldenBad(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(testsDir, "bad", "*.vasc"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no bad test files found under %s", testsDir)
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			src, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("reading %s: %v", file, err)
			}
			res, err := Compile(string(src), Options{})
			if err == nil {
				t.Fatalf("expected compilation to fail, got output:\n%s", res.Output)
			}
			if res != nil {
				t.Errorf("no result expected on failure")
			}
			if !diag.Is(err, diag.Lex) && !diag.Is(err, diag.Syntax) && !diag.Is(err, diag.Semantic) {
				t.Errorf("expected a compiler error, got=%v", err)
			}
		})
	}
}

func TestCompileErrorKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  diag.Kind
	}{
		{"var x 5;", diag.Syntax},
		{"if (1 == 1) {", diag.Syntax},
		{"var x = 1; var x = 2;", diag.Semantic},
		{"free 5;", diag.Semantic},
		{"var x = 5 - 1;", diag.Lex},
	}

	for _, tt := range tests {
		_, err := Compile(tt.input, Options{})
		if !diag.Is(err, tt.kind) {
			t.Errorf("Compile(%q) expected a %s error, got=%v", tt.input, tt.kind, err)
		}
	}
}

func TestCompileWarnings(t *testing.T) {
	res, err := Compile("#include std\nvar x = 1;\n#define y", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("expected 2 directive warnings, got=%v", res.Warnings)
	}
	if res.Output != "memset 0 1 // VARIABLE : x //\n" {
		t.Errorf("unexpected output: %q", res.Output)
	}
}

func TestCompileStripComments(t *testing.T) {
	res, err := Compile("var x = 5; var y = x; if (1 == 1) { }", Options{StripComments: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(res.Output, "//") {
		t.Fatalf("comments not stripped:\n%s", res.Output)
	}

	expected := strings.Join([]string{
		"memset 0 5",
		"mov rax 0",
		"memset 1 rax",
		"memset 2 1",
		"mov rbx 2",
		"memset 3 1",
		"mov rcx 3",
		"eq rdx rbx rcx",
		"not rdx",
		"jgt rdx 0 15",
		"label 15",
	}, "\n") + "\n"
	if res.Output != expected {
		t.Errorf("output mismatch\nexpected:\n%s\ngot:\n%s", expected, res.Output)
	}
}

func TestCompileAndWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "index.vasc")
	out := filepath.Join(dir, "build", "tmp.vasm")

	if err := os.WriteFile(src, []byte("var x = 5;\n"), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	if _, err := CompileAndWrite(src, out, Options{}); err != nil {
		t.Fatalf("CompileAndWrite() unexpected error: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != "memset 0 5 // VARIABLE : x //\n" {
		t.Errorf("unexpected output file contents: %q", got)
	}
}

func TestCompileAndWriteFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "index.vasc")
	out := filepath.Join(dir, "tmp.vasm")

	if err := os.WriteFile(src, []byte("var x 5;\n"), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	_, err := CompileAndWrite(src, out, Options{})
	if !diag.Is(err, diag.Syntax) {
		t.Fatalf("expected a wrapped Syntax error, got=%v", err)
	}
	if !strings.HasPrefix(err.Error(), src+": ") {
		t.Errorf("error should name the source file, got=%q", err.Error())
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("no output file expected on failure, stat err=%v", statErr)
	}
}

func TestCompileAndWriteValidatesExtension(t *testing.T) {
	_, err := CompileAndWrite("program.txt", filepath.Join(t.TempDir(), "out.vasm"), Options{})
	if err == nil || !strings.Contains(err.Error(), ".vasc") {
		t.Fatalf("expected an extension error, got=%v", err)
	}
}
