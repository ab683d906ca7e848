package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestFD_FrequencyOutput(t *testing.T) {
	out, err := run(t, "fd", "--nyquist", "256", "--delta-f", "0.25", "--distance", "400")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 1024)
	assert.Len(t, strings.Fields(rows[0]), 7)
	assert.True(t, strings.HasPrefix(rows[4], "1 "), rows[4])
}

func TestFD_TimeDomainOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fd.txt")
	_, err := run(t, "fd", "--nyquist", "256", "--delta-f", "0.25", "--distance", "400",
		"--time-domain", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows := lines(string(data))
	assert.Len(t, rows, 2*(1024-1))
	assert.Len(t, strings.Fields(rows[0]), 3)
}

func TestNR_SynthesizeAndReconstruct(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "hybrid.h5")

	_, err := run(t, "synth", "--out", data, "--knots", "51")
	require.NoError(t, err)

	out, err := run(t, "nr", "--data", data, "--list-modes")
	require.NoError(t, err)
	assert.Equal(t, "(2,2)\n", out)

	txt := filepath.Join(dir, "nr.txt")
	wavPath := filepath.Join(dir, "hp.wav")
	_, err = run(t, "nr", "--data", data, "--distance", "100", "--delta-t", "0.000244140625",
		"--out", txt, "--wav", wavPath)
	require.NoError(t, err)

	body, err := os.ReadFile(txt)
	require.NoError(t, err)
	rows := lines(string(body))
	assert.Greater(t, len(rows), 1000)
	assert.Len(t, strings.Fields(rows[0]), 3)

	f, err := os.Open(wavPath)
	require.NoError(t, err)
	defer f.Close()
	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	assert.Equal(t, uint32(4096), dec.SampleRate)
}

func TestNR_TaperedSpectrum(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "hybrid.h5")
	_, err := run(t, "synth", "--out", data)
	require.NoError(t, err)

	out, err := run(t, "nr", "--data", data, "--distance", "100", "--taper", "0.05", "--spectrum")
	require.NoError(t, err)
	rows := lines(out)
	assert.Greater(t, len(rows), 500)
	assert.Len(t, strings.Fields(rows[0]), 5)
}

func TestNR_TukeyWindowedSpectrum(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "hybrid.h5")
	_, err := run(t, "synth", "--out", data)
	require.NoError(t, err)

	out, err := run(t, "nr", "--data", data, "--distance", "100", "--tukey", "0.1", "--spectrum", "--pad-pow2")
	require.NoError(t, err)
	rows := lines(out)
	assert.Greater(t, len(rows), 500)
	assert.Len(t, strings.Fields(rows[0]), 5)

	_, err = run(t, "nr", "--data", data, "--distance", "100", "--tukey", "2", "--spectrum")
	assert.Error(t, err)
}

func TestNR_ConfigLimitsModes(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "gwgen.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("nr:\n  max_l: 2\nlogging:\n  level: error\n"), 0o644))

	data := filepath.Join(dir, "hybrid.h5")
	_, err := run(t, "--config", cfg, "synth", "--out", data)
	require.NoError(t, err)

	out, err := run(t, "--config", cfg, "nr", "--data", data, "--list-modes")
	require.NoError(t, err)
	assert.Equal(t, "(2,2)\n", out)
}

func TestErrors(t *testing.T) {
	_, err := run(t, "nr")
	assert.Error(t, err, "--data is required")

	_, err = run(t, "synth", "--out", filepath.Join(t.TempDir(), "x.h5"), "--knots", "1")
	assert.Error(t, err)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "fd")
	assert.Error(t, err)

	_, err = run(t, "nr", "--data", filepath.Join(t.TempDir(), "missing.h5"))
	assert.Error(t, err)
}
