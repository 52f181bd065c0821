package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

const (
	lineStart = "02-19 10:00:00.000   500   600 I ActivityManager: start"
	lineStop  = "02-19 11:00:00.000   500   600 I ActivityManager: stop"
	lineDone  = "02-19 12:00:00.000   700   800 I ActivityManager: done"
	lineNoise = "02-19 10:30:00.000   500   600 D dalvikvm: GC_CONCURRENT freed 1012K, 55% free"
)

// runRoot executes the root command with args, capturing stdout and stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		// nil would make cobra fall back to os.Args, which carries test
		// flags here.
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeLog(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeGzipLog(t *testing.T, path string, lines ...string) {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(strings.Join(lines, "\n") + "\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func readSorted(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestRunSort_MergesAndDeduplicates(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "robot1.log")
	second := filepath.Join(dir, "robot2.log")
	writeLog(t, first, lineStart, lineStop)
	writeLog(t, second, lineStop, lineDone)

	stdout, stderr, err := runRoot(t, first, second)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}

	wantStdout := "reading 'robot1.log'\nreading 'robot2.log'\nemitting 'robot1.log.sorted'\n"
	if stdout != wantStdout {
		t.Errorf("stdout = %q, want %q", stdout, wantStdout)
	}

	got := readSorted(t, first+".sorted")
	want := lineStart + "\n" + lineStop + "\n" + lineDone + "\n"
	if got != want {
		t.Errorf("merged output = %q, want %q", got, want)
	}
}

func TestRunSort_GzipInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "robot.log.gz")
	writeGzipLog(t, input, lineStop, lineStart)

	stdout, _, err := runRoot(t, input)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if !strings.Contains(stdout, "reading 'robot.log.gz'") {
		t.Errorf("stdout = %q, want reading message", stdout)
	}

	got := readSorted(t, input+".sorted")
	want := lineStart + "\n" + lineStop + "\n"
	if got != want {
		t.Errorf("merged output = %q, want %q", got, want)
	}
}

func TestRunSort_OutFlag(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "robot.log")
	outPath := filepath.Join(dir, "merged.txt")
	writeLog(t, input, lineStart)

	stdout, _, err := runRoot(t, "-out", outPath, input)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if !strings.Contains(stdout, "emitting 'merged.txt'") {
		t.Errorf("stdout = %q, want emitting message", stdout)
	}

	if got := readSorted(t, outPath); got != lineStart+"\n" {
		t.Errorf("merged output = %q, want %q", got, lineStart+"\n")
	}
}

func TestRunSort_SkipsOwnOutput(t *testing.T) {
	// A .sorted file left by a previous run matches the glob but must not
	// be read back into the merge.
	dir := t.TempDir()
	input := filepath.Join(dir, "a.log")
	writeLog(t, input, lineStart)
	writeLog(t, input+".sorted", "junk from a previous run that must not survive")

	stdout, stderr, err := runRoot(t, filepath.Join(dir, "a.log*"))
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}
	if strings.Contains(stdout, "reading 'a.log.sorted'") {
		t.Errorf("stdout = %q, output file was read back", stdout)
	}

	if got := readSorted(t, input+".sorted"); got != lineStart+"\n" {
		t.Errorf("merged output = %q, want %q", got, lineStart+"\n")
	}
}

func TestRunSort_SkipsExplicitOutputListedAsInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "robot.log")
	outPath := filepath.Join(dir, "merged.txt")
	writeLog(t, input, lineStart)
	writeLog(t, outPath, "junk from a previous run that must not survive")

	stdout, stderr, err := runRoot(t, "-out", outPath, input, outPath)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}
	if strings.Contains(stdout, "reading 'merged.txt'") {
		t.Errorf("stdout = %q, output file was read back", stdout)
	}

	if got := readSorted(t, outPath); got != lineStart+"\n" {
		t.Errorf("merged output = %q, want %q", got, lineStart+"\n")
	}
}

func TestRunSort_BadGzipContinues(t *testing.T) {
	// A .gz name promises gzip content; plain text behind it is an open
	// error for that file, not for the run.
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.log.gz")
	good := filepath.Join(dir, "good.log")
	writeLog(t, bad, lineStart)
	writeLog(t, good, lineStop)

	_, stderr, err := runRoot(t, bad, good)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if !strings.Contains(stderr, "opening gzip file") {
		t.Errorf("stderr = %q, want gzip open error", stderr)
	}

	if got := readSorted(t, good+".sorted"); got != lineStop+"\n" {
		t.Errorf("merged output = %q, want %q", got, lineStop+"\n")
	}
}

func TestRunSort_MissingFileContinues(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.log")
	present := filepath.Join(dir, "real.log")
	writeLog(t, present, lineStart)

	stdout, stderr, err := runRoot(t, missing, present)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if !strings.Contains(stderr, `file "missing.log" not found`) {
		t.Errorf("stderr = %q, want not-found message", stderr)
	}

	// The output is named after the first input that opened, not the
	// first argument.
	if !strings.Contains(stdout, "emitting 'real.log.sorted'") {
		t.Errorf("stdout = %q, want output named after real.log", stdout)
	}
	if got := readSorted(t, present+".sorted"); got != lineStart+"\n" {
		t.Errorf("merged output = %q, want %q", got, lineStart+"\n")
	}
}

func TestRunSort_AllInputsMissing(t *testing.T) {
	dir := t.TempDir()

	_, stderr, err := runRoot(t, filepath.Join(dir, "nope.log"))
	if !errors.Is(err, errUsage) {
		t.Fatalf("run error = %v, want errUsage", err)
	}
	if !strings.Contains(stderr, `file "nope.log" not found`) {
		t.Errorf("stderr = %q, want not-found message", stderr)
	}

	leftover, err := filepath.Glob(filepath.Join(dir, "*.sorted"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftover) != 0 {
		t.Errorf("output files created with nothing processed: %v", leftover)
	}
}

func TestRunSort_TidyByDefault(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "robot.log")
	writeLog(t, input, lineStop, lineNoise)

	if _, _, err := runRoot(t, input); err != nil {
		t.Fatalf("run error = %v", err)
	}

	if got := readSorted(t, input+".sorted"); got != lineStop+"\n" {
		t.Errorf("merged output = %q, want noise removed", got)
	}
}

func TestRunSort_NoTidyKeepsNoise(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "robot.log")
	outPath := filepath.Join(dir, "kept.txt")
	writeLog(t, input, lineStop, lineNoise)

	if _, _, err := runRoot(t, "-notidy", "-out", outPath, input); err != nil {
		t.Fatalf("run error = %v", err)
	}

	want := lineNoise + "\n" + lineStop + "\n"
	if got := readSorted(t, outPath); got != want {
		t.Errorf("merged output = %q, want %q", got, want)
	}
}

func TestRunSort_Deterministic(t *testing.T) {
	// Epoch-dated captures exercise the process-appearance ordering; two
	// identical runs must produce byte-identical files.
	dir := t.TempDir()
	input := filepath.Join(dir, "boot.log")
	writeLog(t, input,
		"01-01 00:00:10.000     7    70 I Svc: seven",
		"01-01 00:00:10.000     5    50 I Svc: five",
		"01-01 00:00:10.000     3    30 I Svc: three",
		"garbage",
	)

	outA := filepath.Join(dir, "a.out")
	outB := filepath.Join(dir, "b.out")
	if _, _, err := runRoot(t, "-out", outA, input); err != nil {
		t.Fatalf("first run error = %v", err)
	}
	if _, _, err := runRoot(t, "-out", outB, input); err != nil {
		t.Fatalf("second run error = %v", err)
	}

	a, b := readSorted(t, outA), readSorted(t, outB)
	if a == "" {
		t.Fatal("first run produced no output")
	}
	if a != b {
		t.Errorf("runs differ:\n%q\n%q", a, b)
	}
}

func TestRunSort_UsageOnNoArgs(t *testing.T) {
	_, _, err := runRoot(t)
	if !errors.Is(err, errUsage) {
		t.Errorf("run error = %v, want errUsage", err)
	}
}

func TestRunSort_ContextCanceled(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "robot.log")
	writeLog(t, input, lineStart)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{input})

	err := cmd.ExecuteContext(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("run error = %v, want context.Canceled", err)
	}
}
