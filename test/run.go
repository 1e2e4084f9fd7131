package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	vascCmd        = "go run ./cmd/vasc build --quiet"
	compileTimeout = 30 * time.Second // Timeout for one vasc invocation (includes go run)
)

type testResult struct {
	fileName string
	passed   bool
	output   string // Contains detailed error/mismatch info on failure
	isGood   bool   // True for good tests, false for bad tests
}

func main() {
	fmt.Println("🧹 Cleaning output directory...")
	_ = os.RemoveAll("out")
	_ = os.Mkdir("out", 0755)

	// --- Run Good Tests Sequentially ---
	fmt.Println("\n🔍 Running good tests:")
	goodFiles, _ := filepath.Glob(filepath.Join("tests/good", "*.vasc"))
	fmt.Printf("Found %d good test files...\n", len(goodFiles))

	goodPassed, goodFailed := 0, 0
	badPassed, badFailed := 0, 0
	failedTests := []testResult{}

	for _, file := range goodFiles {
		fmt.Printf("→ Running good test: %s\n", filepath.Base(file))
		res := runGoodTest(file)
		if res.passed {
			fmt.Printf("  ✅ %s\n", res.fileName)
			goodPassed++
		} else {
			fmt.Printf("  ❌ %s\n", res.fileName)
			goodFailed++
			failedTests = append(failedTests, res)
		}
	}

	// --- Run Bad Tests Sequentially ---
	fmt.Println("\n💥 Running bad tests:")
	badFiles, _ := filepath.Glob(filepath.Join("tests/bad", "*.vasc"))
	fmt.Printf("Found %d bad test files...\n", len(badFiles))

	for _, file := range badFiles {
		fmt.Printf("→ Running bad test: %s\n", filepath.Base(file))
		res := runBadTest(file)
		if res.passed {
			fmt.Printf("  ✅ %s (Failed as expected)\n", res.fileName)
			badPassed++
		} else {
			fmt.Printf("  ❌ %s (Unexpected Result)\n", res.fileName)
			badFailed++
			failedTests = append(failedTests, res)
		}
	}

	// --- Reporting ---
	if len(failedTests) > 0 {
		fmt.Println("\n--- Detailed Failures ---")
		for _, failure := range failedTests {
			fmt.Printf("\n❌ Test: %s (%s)\n", failure.fileName, map[bool]string{true: "Good Test", false: "Bad Test"}[failure.isGood])
			fmt.Println("Reason:")
			fmt.Println(failure.output)
			fmt.Println("---")
		}
	}

	fmt.Println("\n--------------------")
	fmt.Printf("Good Tests Summary: ✅ Passed: %d | ❌ Failed: %d\n", goodPassed, goodFailed)
	fmt.Printf("Bad Tests Summary:  ✅ Passed: %d | ❌ Failed: %d\n", badPassed, badFailed) // Passed = Failed as expected
	fmt.Println("--------------------")

	if goodFailed > 0 || badFailed > 0 {
		fmt.Println("\n🚨 Some tests failed!")
		os.Exit(1)
	} else {
		fmt.Println("\n🎉 All tests passed!")
	}
}

// runGoodTest compiles one 'good' program and diffs it against tests/good/expected.
func runGoodTest(file string) testResult {
	var buf bytes.Buffer
	fileName := filepath.Base(file)
	nameWithoutExt := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	res := testResult{fileName: fileName, isGood: true, passed: false}

	// --- 1. Compile vasc -> vasm ---
	outfilePath := filepath.Join("out", nameWithoutExt+".vasm")
	cmdCompile := exec.Command("sh", "-c", fmt.Sprintf("%s -o %s %s", vascCmd, outfilePath, file))
	compileOutputBytes, compileErr := runCommandWithTimeout(cmdCompile, compileTimeout)
	compileOutput := string(compileOutputBytes)

	if compileErr != nil {
		buf.WriteString(fmt.Sprintf("vasc build failed: %v\nOutput:\n%s", compileErr, compileOutput))
		res.output = buf.String()
		return res
	}
	// Warnings are allowed, errors are not
	if strings.Contains(compileOutput, "Error:") {
		buf.WriteString(fmt.Sprintf("vasc build produced unexpected fatal errors:\nOutput:\n%s", compileOutput))
		res.output = buf.String()
		return res
	}

	// --- 2. Compare generated instructions with expected ---
	expectedPath := filepath.Join("tests/good/expected", nameWithoutExt+".vasm")
	expectedBytes, err := os.ReadFile(expectedPath)
	if err != nil {
		buf.WriteString(fmt.Sprintf("Missing expected output: %s", expectedPath))
		res.output = buf.String()
		return res
	}

	actualBytes, err := os.ReadFile(outfilePath)
	if err != nil {
		buf.WriteString(fmt.Sprintf("Missing actual generated output: %s\nCompiler Output:\n%s", outfilePath, compileOutput))
		res.output = buf.String()
		return res
	}

	// Normalize line endings before comparison
	expectedNorm := bytes.ReplaceAll(expectedBytes, []byte("\r\n"), []byte("\n"))
	actualNorm := bytes.ReplaceAll(actualBytes, []byte("\r\n"), []byte("\n"))

	if !bytes.Equal(expectedNorm, actualNorm) {
		buf.WriteString(fmt.Sprintf("Output Mismatch\nExpected (%s):\n%s\nActual (%s):\n%s", expectedPath, string(expectedNorm), outfilePath, string(actualNorm)))
		res.output = buf.String()
		return res
	}

	res.passed = true
	return res
}

// runBadTest expects vasc to reject the program with a lex, syntax or
// semantic error and to leave no output file behind.
func runBadTest(file string) testResult {
	fileName := filepath.Base(file)
	nameWithoutExt := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	res := testResult{fileName: fileName, isGood: false, passed: false}

	outfilePath := filepath.Join("out", nameWithoutExt+".vasm")
	cmd := exec.Command("sh", "-c", fmt.Sprintf("%s -o %s %s", vascCmd, outfilePath, file))
	outputBytes, err := runCommandWithTimeout(cmd, compileTimeout)
	output := string(outputBytes)

	expectedErrorPatterns := []string{"Lex Error:", "Syntax Error:", "Semantic Error:"}
	hasExpectedErrorMsg := false
	for _, pattern := range expectedErrorPatterns {
		if strings.Contains(output, pattern) {
			hasExpectedErrorMsg = true
			break
		}
	}
	_, statErr := os.Stat(outfilePath)
	wroteOutput := statErr == nil

	switch {
	case err != nil && hasExpectedErrorMsg && !wroteOutput:
		res.passed = true
	case err != nil && wroteOutput:
		res.output = fmt.Sprintf("Failed, but partial output was written to %s.\nOutput:\n%s", outfilePath, output)
	case err != nil:
		res.output = fmt.Sprintf("Failed, but no expected error message pattern detected.\nExit Err: %v\nOutput:\n%s", err, output)
	default:
		res.output = fmt.Sprintf("Expected failure but got success.\nOutput:\n%s", output)
	}
	return res
}

func runCommandWithTimeout(cmd *exec.Cmd, timeout time.Duration) ([]byte, error) {
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out // Capture both stdout and stderr

	err := cmd.Start()
	if err != nil {
		return out.Bytes(), fmt.Errorf("failed to start command '%s': %w", cmd.String(), err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-time.After(timeout):
		if killErr := cmd.Process.Kill(); killErr != nil {
			return out.Bytes(), fmt.Errorf("command '%s' timed out after %v and failed to kill: %w", cmd.String(), timeout, killErr)
		}
		return out.Bytes(), fmt.Errorf("command '%s' timed out after %v", cmd.String(), timeout)
	case err := <-done:
		return out.Bytes(), err
	}
}
