package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef/export"
)

var (
	readerData  = filepath.Join("..", "..", "..", "pkg", "lef", "reader", "testdata")
	techlibData = filepath.Join("..", "..", "..", "pkg", "techlib", "testdata")
)

// run executes the root command with fresh flag values and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	// Reset flags to prevent accumulation between tests
	verbose = false
	configPath = ""
	noColor = false
	dumpModel = false
	checkDump = false
	showMacros = false
	outputJSON = false
	jobs = 0
	outputPath = ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// TestParseE2E tests the parse command end-to-end
func TestParseE2E(t *testing.T) {
	sample := filepath.Join(readerData, "sample.lef")

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "summary",
			args: []string{"parse", sample},
			wantContain: []string{
				"LEF Library:",
				"Version:        5.8",
				"Database units: 2000 per MICRONS",
				"Layers: 4",
				"metal1",
				"HORIZONTAL",
				"Macros: 2",
				"Warnings: 1",
				"Parsing completed successfully!",
			},
		},
		{
			name: "macros",
			args: []string{"parse", "--macros", sample},
			wantContain: []string{
				"INV",
				"BUF",
				"OUTPUT TRISTATE",
			},
		},
		{
			name: "dump with check",
			args: []string{"parse", "--dump", "--check", sample},
			wantContain: []string{
				"(library",
				"(macro",
			},
		},
		{
			name:    "parse error",
			args:    []string{"parse", filepath.Join(readerData, "broken.lef")},
			wantErr: true,
		},
		{
			name:    "strict config rejects unknown statements",
			args:    []string{"parse", "--config", filepath.Join(readerData, "config.toml"), filepath.Join(readerData, "unknown.lef")},
			wantErr: true,
		},
		{
			name:    "bad config",
			args:    []string{"parse", "--config", filepath.Join(readerData, "badkey.toml"), sample},
			wantErr: true,
		},
		{
			name:    "missing file",
			args:    []string{"parse", "no-such-file.lef"},
			wantErr: true,
		},
		{
			name:    "no arguments",
			args:    []string{"parse"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := run(t, tt.args...)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

func TestInfoE2E(t *testing.T) {
	output, err := run(t, "info", "--jobs", "2", techlibData)
	if err != nil {
		t.Fatalf("info failed: %v\nOutput: %s", err, output)
	}
	for _, want := range []string{
		"tech.tlef",
		"macros=2",
		"macro FILL defined in",
		"macro FILL uses undefined site IO",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
		}
	}
}

func TestInfoJSON(t *testing.T) {
	output, err := run(t, "info", "--json",
		filepath.Join(techlibData, "tech.tlef"),
		filepath.Join(readerData, "sample.lef"))
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	var summaries []export.Summary
	if err := json.Unmarshal([]byte(output), &summaries); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, output)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if len(summaries[0].Sites) != 1 || summaries[0].Sites[0].Name != "core" {
		t.Errorf("unexpected sites %+v", summaries[0].Sites)
	}
	if len(summaries[1].Macros) != 2 {
		t.Errorf("expected 2 macros in sample, got %d", len(summaries[1].Macros))
	}
}

func TestExportE2E(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "sample.mp")
	output, err := run(t, "export", filepath.Join(readerData, "sample.lef"), "-o", dest)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(output, "Exported 4 layers, 2 macros") {
		t.Errorf("unexpected output: %s", output)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	s, err := export.Decode(f)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s.Source != "sample.lef" {
		t.Errorf("unexpected source %q", s.Source)
	}
	if s.Macro("INV") == nil {
		t.Errorf("INV missing from export")
	}
}

func TestMacroE2E(t *testing.T) {
	output, err := run(t, "macro", "INV_X1", techlibData)
	if err != nil {
		t.Fatalf("macro failed: %v", err)
	}
	if !strings.Contains(output, "(macro") || !strings.Contains(output, "INV_X1") {
		t.Errorf("unexpected output:\n%s", output)
	}
	if !strings.Contains(output, "inv.lef") {
		t.Errorf("defining file missing:\n%s", output)
	}

	if _, err := run(t, "macro", "XOR3", techlibData); err == nil {
		t.Errorf("expected error for unknown macro")
	}
}
