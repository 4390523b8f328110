package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/gblogo/logo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func run(t *testing.T, args ...string) error {
	app := newApp()
	app.Writer = new(bytes.Buffer)
	app.ErrWriter = new(bytes.Buffer)
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app.Run(append([]string{"gblogo"}, args...))
}

func exitCode(t *testing.T, err error) int {
	if err == nil {
		return 0
	}
	coder, ok := err.(cli.ExitCoder)
	require.True(t, ok, "%v", err)
	return coder.ExitCode()
}

func writeROM(t *testing.T, dir, name string, p logo.Packed) string {
	b := make([]byte, 0x8000)
	copy(b[logo.Offset:], p[:])
	file := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(file, b, 0666))
	return file
}

func TestGetSet(t *testing.T) {
	dir := t.TempDir()
	src := writeROM(t, dir, "src.gb", logo.Nintendo)
	dst := writeROM(t, dir, "dst.gb", logo.Packed{})
	image := filepath.Join(dir, "logo.png")
	out := filepath.Join(dir, "out.gb")

	assert.Equal(t, 0, exitCode(t, run(t, "--get", src, image)))
	assert.Equal(t, 0, exitCode(t, run(t, "-s", "-o", out, dst, image)))

	b, err := os.ReadFile(out)
	require.Nil(t, err)
	assert.Equal(t, logo.Nintendo[:], b[logo.Offset:logo.Offset+logo.PackedSize])

	// Without --output the ROM is replaced
	assert.Equal(t, 0, exitCode(t, run(t, "--set", "--fix-checksum", dst, image)))
	b, err = os.ReadFile(dst)
	require.Nil(t, err)
	assert.Equal(t, logo.Nintendo[:], b[logo.Offset:logo.Offset+logo.PackedSize])
}

func TestFailures(t *testing.T) {
	dir := t.TempDir()
	rom := writeROM(t, dir, "rom.gb", logo.Nintendo)
	image := filepath.Join(dir, "logo.png")

	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"missing image", []string{"-g", rom}},
		{"no action", []string{rom, image}},
		{"both actions", []string{"-g", "-s", rom, image}},
		{"missing rom", []string{"-g", filepath.Join(dir, "missing.gb"), image}},
		{"unknown format", []string{"-g", rom, filepath.Join(dir, "logo.txt")}},
		{"missing image file", []string{"-s", rom, filepath.Join(dir, "missing.png")}},
		{"scan without directory", []string{"scan"}},
		{"export without directory", []string{"export"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 1, exitCode(t, run(t, tt.args...)))
		})
	}
}

func TestScanExport(t *testing.T) {
	dir := t.TempDir()
	roms := filepath.Join(dir, "roms")
	require.Nil(t, os.MkdirAll(roms, 0777))
	writeROM(t, roms, "a.gb", logo.Nintendo)
	writeROM(t, roms, "b.gb", logo.Packed{0x01})

	db := filepath.Join(dir, "gblogo.db")
	out := filepath.Join(dir, "logos")

	assert.Equal(t, 0, exitCode(t, run(t, "--db", db, "-v", "scan", roms)))
	assert.Equal(t, 0, exitCode(t, run(t, "--db", db, "export", out)))

	files, err := os.ReadDir(out)
	require.Nil(t, err)
	assert.Len(t, files, 2)
}
