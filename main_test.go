package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivier-w/springcurve/internal/geom"
)

func TestParsePointer(t *testing.T) {
	p, err := parsePointer("400, 125.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != (geom.Pointer{X: 400, Y: 125.5}) {
		t.Fatalf("unexpected pointer %+v", p)
	}

	for _, bad := range []string{"", "400", "x,1", "1,y", "NaN,1", "1,Inf", "-inf,0"} {
		if _, err := parsePointer(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRunReturnsErrors(t *testing.T) {
	dir := t.TempDir()
	defer func(c, l, s, p string) {
		*configPath, *logPath, *snapshotPath, *pointerFlag = c, l, s, p
	}(*configPath, *logPath, *snapshotPath, *pointerFlag)

	*configPath = filepath.Join(dir, "missing.yaml")
	if err := run(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing config error, got %v", err)
	}

	*configPath = ""
	*logPath = filepath.Join(dir, "springcurve.log")
	*snapshotPath = filepath.Join(dir, "out.png")
	*pointerFlag = "NaN,0"
	if err := run(); err == nil {
		t.Fatal("expected error for non-finite pointer")
	}
	if _, err := os.Stat(*snapshotPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no snapshot written, got %v", err)
	}

	logged, err := os.ReadFile(*logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(logged), "headless snapshot") {
		t.Fatalf("expected the error to reach the log file, got %q", logged)
	}
}
