package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	textcompare "github.com/baditaflorin/go_text_compare"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWithStderr(t, append([]string{"-q"}, args...)...)
	return out, err
}

func executeWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd, a := newRootCmd()
	var out, stderr bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if cerr := a.closeLogger(); cerr != nil {
		t.Fatalf("closeLogger: %v", cerr)
	}
	return out.String(), stderr.String(), err
}

func TestTextCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "text",
			args: []string{"text", "hello", "hallo"},
			want: []string{"COMPARISON", "origin-target1", "0.8", "0.2", "origin-target1 #1"},
		},
		{
			name: "two candidates",
			args: []string{"text", "hello", "hallo", "hello"},
			want: []string{"origin-target1", "origin-target2"},
		},
		{
			name: "html",
			args: []string{"-o", "html", "text", "hello", "hallo"},
			want: []string{"<!DOCTYPE html>", "diff-replace"},
		},
		{
			name: "patch",
			args: []string{"-o", "patch", "text", "abcd", "abxd"},
			want: []string{"--- origin-target1 #1", "@@ -1,4 +1,4 @@"},
		},
		{
			name: "undefined rates",
			args: []string{"text", "", "abc"},
			want: []string{"n/a", "1 undefined cer, 1 undefined wer, 0 failed rows"},
		},
		{
			name: "normalizer",
			args: []string{"-n", "fold", "text", "Hello, World!", "hello world"},
			want: []string{"origin-target1  1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output is missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestJSONOutput(t *testing.T) {
	out, err := execute(t, "-o", "json", "text", "the cat sat", "the cat sits")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var doc struct {
		Overview []textcompare.OverviewRow `json:"overview"`
		Result   textcompare.BatchResult   `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got := doc.Overview[0].WER.Value; got != 0.333 {
		t.Fatalf("wer = %v, want 0.333", got)
	}
	if len(doc.Result.Results["target1"].Rows) != 1 {
		t.Fatalf("expected one row, got %+v", doc.Result)
	}
}

func TestFileCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	if err := os.WriteFile(path, []byte("origin,target1\nhello,hallo\nabc,abc\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "file", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "0.9") {
		t.Fatalf("expected the mean ratio 0.9 in:\n%s", out)
	}
	if strings.Contains(out, "#1") {
		t.Fatalf("row diffs are printed only with --diff:\n%s", out)
	}

	out, err = execute(t, "--diff", "file", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "origin-target1 #2") {
		t.Fatalf("expected per-row diffs with --diff:\n%s", out)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown format", []string{"-o", "yaml", "text", "a", "b"}, textcompare.ErrInvalidConfig},
		{"unknown normalizer", []string{"-n", "stem", "text", "a", "b"}, textcompare.ErrInvalidConfig},
		{"too many candidates", []string{"text", "a", "b", "c", "d"}, textcompare.ErrInvalidInputShape},
		{"missing candidate", []string{"text", "a"}, nil},
		{"missing file", []string{"file", filepath.Join(t.TempDir(), "missing.csv")}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFailedCommandFlushesErrorLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.csv")
	content := "origin,target1,target2,target3\na,b,c,d\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, a := newRootCmd()
	var out, stderr bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"-q", "file", path})
	err := cmd.Execute()
	if !errors.Is(err, textcompare.ErrInvalidInputShape) {
		t.Fatalf("expected ErrInvalidInputShape, got %v", err)
	}

	// The subcommand closed the logger before Execute returned, so the
	// error record is already written.
	if a.logger != nil {
		t.Fatal("logger still open after a failed command")
	}
	if !strings.Contains(stderr.String(), "Rejected table") {
		t.Fatalf("stderr is missing the error record:\n%s", stderr.String())
	}
}

func TestSuccessfulCommandClosesLogger(t *testing.T) {
	cmd, a := newRootCmd()
	var out, stderr bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"-v", "text", "hello", "hallo"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if a.logger != nil {
		t.Fatal("logger still open after the command finished")
	}
	if !strings.Contains(stderr.String(), "Finished batch comparison") {
		t.Fatalf("stderr is missing the info record:\n%s", stderr.String())
	}
}
