package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// runApp invokes buildApp with args, redirecting the process's stdin/stdout
// so the CLI's os.Stdin/os.Stdout-based I/O can be captured without forking
// a real subprocess.
func runApp(t *testing.T, args []string, stdin string) (stdout string, err error) {
	t.Helper()

	oldStdin, oldStdout := os.Stdin, os.Stdout
	defer func() { os.Stdin, os.Stdout = oldStdin, oldStdout }()

	inR, inW, perr := os.Pipe()
	if perr != nil {
		t.Fatal(perr)
	}
	go func() {
		inW.WriteString(stdin)
		inW.Close()
	}()
	os.Stdin = inR

	outR, outW, perr := os.Pipe()
	if perr != nil {
		t.Fatal(perr)
	}
	os.Stdout = outW

	err = buildApp().Run(append([]string{"nsort"}, args...))
	outW.Close()

	var buf bytes.Buffer
	buf.ReadFrom(outR)
	return buf.String(), err
}

func TestCLIStringSortFromStdin(t *testing.T) {
	got, err := runApp(t, nil, "banana\napple\ncherry\n")
	if err != nil {
		t.Fatal(err)
	}
	want := "apple\nbanana\ncherry\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCLINumericFlag(t *testing.T) {
	got, err := runApp(t, []string{"-n"}, "10\n2\n1\n")
	if err != nil {
		t.Fatal(err)
	}
	want := "1\n2\n10\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCLIClusteredShortOptions(t *testing.T) {
	got, err := runApp(t, []string{"-nqu"}, "\"2\",a\n\"2\",a\n\"10\",b\n")
	if err != nil {
		t.Fatal(err)
	}
	want := "\"2\",a\n\"10\",b\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCLIInvalidOptionIsNonZeroExit(t *testing.T) {
	_, err := runApp(t, []string{"--bogus-flag"}, "")
	if err == nil {
		t.Fatal("expected an error for an unrecognized flag")
	}
}

func TestCLITooManyPositionalArgs(t *testing.T) {
	_, err := runApp(t, []string{"a", "b"}, "")
	if err == nil {
		t.Fatal("expected an error for more than one positional argument")
	}
}

func TestCLIReadsFromInfileArgument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(path, []byte("b\na\nc\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := runApp(t, []string{path}, "")
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nb\nc\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCLIWritesToOutfile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.txt")
	_, err := runApp(t, []string{"-o", outPath}, "b\na\nc\n")
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a\nb\nc\n" {
		t.Errorf("got %q, want %q", string(data), "a\nb\nc\n")
	}
}

func TestCLIOutfileSameAsInfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roundtrip.txt")
	if err := os.WriteFile(path, []byte("3\n1\n2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runApp(t, []string{"-n", "-o", path, path}, ""); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1\n2\n3\n" {
		t.Errorf("got %q, want %q", string(data), "1\n2\n3\n")
	}
}
