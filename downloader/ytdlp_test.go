package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeBin writes a shell script that records its arguments and exits with
// the given status.
func fakeBin(t *testing.T, exitCode int) (bin, argsFile string) {
	t.Helper()
	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args.txt")
	bin = filepath.Join(dir, "fake-yt-dlp")
	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" > %s\nexit %d\n", argsFile, exitCode)
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}
	return bin, argsFile
}

func TestYTDLPInvocation(t *testing.T) {
	bin, argsFile := fakeBin(t, 0)
	y := NewYTDLP(bin)

	url := "https://www.youtube.com/watch?v=vid1"
	dest := filepath.Join(t.TempDir(), "Acme", "vid1.%(ext)s")
	if err := y.Download(context.Background(), url, dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	want := "-f best -o " + dest + " --quiet --no-warnings " + url
	if diff := cmp.Diff(want, strings.TrimSpace(string(data))); diff != "" {
		t.Errorf("arguments mismatch (-want +got):\n%s", diff)
	}
}

func TestYTDLPFailure(t *testing.T) {
	bin, _ := fakeBin(t, 1)
	y := NewYTDLP(bin)

	err := y.Download(context.Background(), "https://www.youtube.com/watch?v=vid1", "out")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNewYTDLPDefaultBinary(t *testing.T) {
	if got := NewYTDLP("").bin; got != "yt-dlp" {
		t.Errorf("default binary is %q", got)
	}
}
