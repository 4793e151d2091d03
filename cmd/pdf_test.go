package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfreiman/pagesmith/internal/document/documenttest"
	"github.com/kfreiman/pagesmith/internal/workflow"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		flags = pdfFlags{outDir: "."}
		splitMethod, splitRanges, previewChars = string(workflow.SplitByRange), "", 0
		imgFlags = defaultImageFlags()
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func writeInput(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, documenttest.MinimalPDF(pages), 0644))
	return path
}

func TestSplitCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "report.pdf", 4)
	outDir := filepath.Join(dir, "out")

	out := execute(t, "split", input, "--ranges", "2-3, 9", "--out", outDir)

	assert.Contains(t, out, "report_extracted.pdf")
	assert.Contains(t, out, "skipped: ")
	assert.FileExists(t, filepath.Join(outDir, "report_extracted.pdf"))
}

func TestMergeCommandJSON(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.pdf", 1)
	b := writeInput(t, dir, "b.pdf", 2)

	out := execute(t, "merge", a, b, "--out", dir, "--name", "both", "--json")

	var result workflow.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "both.pdf", result.Artifact.Filename)
	assert.Equal(t, []int{1, 2, 3}, result.Outputs[0].Pages)
	assert.FileExists(t, filepath.Join(dir, "both.pdf"))
}

func TestInfoCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "report.pdf", 3)

	out := execute(t, "info", input)
	assert.Contains(t, out, "3 pages")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, parseLevel(input))
		})
	}
}
