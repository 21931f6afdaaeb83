package techlib

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef/reader"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(nil, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return repo
}

func TestRepositoryLoadDir(t *testing.T) {
	repo := newRepo(t)
	if err := repo.LoadDir(context.Background(), "testdata"); err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	entries := repo.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 files, got %d", len(entries))
	}
	want := []string{
		filepath.Join("testdata", "cells", "inv.lef"),
		filepath.Join("testdata", "cells", "nand.lef"),
		filepath.Join("testdata", "tech.tlef"),
	}
	for i, e := range entries {
		if e.Path != want[i] {
			t.Errorf("entry %d: got %s, want %s", i, e.Path, want[i])
		}
	}
}

func TestRepositoryLookups(t *testing.T) {
	repo := newRepo(t)
	err := repo.LoadFiles(context.Background(),
		filepath.Join("testdata", "tech.tlef"),
		filepath.Join("testdata", "cells", "inv.lef"),
		filepath.Join("testdata", "cells", "nand.lef"),
	)
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}

	ref, err := repo.Macro("INV_X1")
	if err != nil {
		t.Fatalf("Macro failed: %v", err)
	}
	if ref.Path != filepath.Join("testdata", "cells", "inv.lef") {
		t.Errorf("unexpected path %s", ref.Path)
	}
	if ref.Macro.NumPins() != 1 {
		t.Errorf("expected 1 pin, got %d", ref.Macro.NumPins())
	}

	// nand.lef is case insensitive
	ref, err = repo.Macro("nand2_x1")
	if err != nil {
		t.Fatalf("Macro failed: %v", err)
	}
	if ref.Macro.Name() != "NAND2_X1" {
		t.Errorf("unexpected name %s", ref.Macro.Name())
	}

	// first loaded definition wins
	ref, err = repo.Macro("FILL")
	if err != nil {
		t.Fatalf("Macro failed: %v", err)
	}
	if ref.Macro.SiteName() != "core" {
		t.Errorf("expected FILL from inv.lef, got site %s", ref.Macro.SiteName())
	}

	if _, err := repo.Layer("metal2"); err != nil {
		t.Errorf("Layer failed: %v", err)
	}
	if _, err := repo.Site("core"); err != nil {
		t.Errorf("Site failed: %v", err)
	}
	if _, err := repo.Macro("XOR3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Via("via12"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepositoryChecks(t *testing.T) {
	repo := newRepo(t)
	if err := repo.LoadDir(context.Background(), "testdata"); err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	dups := repo.Duplicates()
	if len(dups) != 1 || len(dups["FILL"]) != 2 {
		t.Fatalf("unexpected duplicates %v", dups)
	}

	missing := repo.MissingSites()
	if len(missing) != 1 || missing["FILL"] != "IO" {
		t.Fatalf("unexpected missing sites %v", missing)
	}
}

func TestRepositoryLoadFilesError(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lef")
	bad := filepath.Join(dir, "bad.lef")
	if err := os.WriteFile(good, []byte("VERSION 5.8 ;\nEND LIBRARY\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile(bad, []byte("LAYER m1\n  WIDTH x ;\nEND m1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	repo := newRepo(t)
	err := repo.LoadFiles(context.Background(), good, bad)
	if err == nil {
		t.Fatalf("expected error")
	}
	var pe *reader.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
	if repo.Len() != 0 {
		t.Fatalf("expected nothing loaded, got %d", repo.Len())
	}
}

func TestRepositoryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := newRepo(t)
	err := repo.LoadFiles(ctx, filepath.Join("testdata", "tech.tlef"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRepositoryAdd(t *testing.T) {
	repo := newRepo(t)
	if err := repo.Add("x.lef", nil); err == nil {
		t.Fatalf("expected error for nil library")
	}
	p, err := reader.NewParser(nil)
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	lib, err := p.ParseString("SITE io\n  CLASS PAD ;\n  SIZE 1 BY 1 ;\nEND io\nEND LIBRARY\n")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if err := repo.Add("inline", lib); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := repo.Site("io"); err != nil {
		t.Fatalf("Site failed: %v", err)
	}
}

func TestIsLEFFile(t *testing.T) {
	cases := map[string]bool{
		"a.lef":      true,
		"b.LEF":      true,
		"tech.tlef":  true,
		"c.def":      false,
		"README.txt": false,
	}
	for path, want := range cases {
		if got := IsLEFFile(path); got != want {
			t.Errorf("IsLEFFile(%q) = %v, want %v", path, got, want)
		}
	}
}
