package gblogo

import (
	"bytes"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/gblogo/logo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGBLogo(t *testing.T, logger *log.Logger) *GBLogo {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	g, err := New(filepath.Join(t.TempDir(), "gblogo.db"), logger)
	require.Nil(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	custom := logo.Packed{0xff, 0x00, 0xff}

	writeROM(t, dir, "a.gb", testROM("ALPHA", logo.Nintendo))
	writeROM(t, dir, "sub/b.GBC", testROM("BRAVO", logo.Nintendo))
	writeROM(t, dir, "sub/deeper/c.sgb", testROM("CHARLIE", custom))
	writeROM(t, dir, "tiny.gb", []byte{0x00, 0x01})
	writeROM(t, dir, "readme.txt", testROM("IGNORED", custom))
	writeROM(t, dir, ".hidden/d.gb", testROM("DELTA", custom))

	buf := new(bytes.Buffer)
	g := testGBLogo(t, log.New(buf, "", 0))

	require.Nil(t, g.Scan(dir))

	entries, err := g.db.Logos()
	require.Nil(t, err)

	counts := make(map[logo.Packed]int)
	for _, e := range entries {
		counts[e.Logo] = e.ROMs
	}
	assert.Equal(t, map[logo.Packed]int{logo.Nintendo: 2, custom: 1}, counts)

	assert.Contains(t, buf.String(), "Skipping \""+filepath.Join(dir, "tiny.gb")+"\", too small")
	assert.Contains(t, buf.String(), "Custom logo in \""+filepath.Join(dir, "sub", "deeper", "c.sgb")+"\"")
	assert.NotContains(t, buf.String(), "a.gb")
}

func TestScanMissing(t *testing.T) {
	g := testGBLogo(t, nil)
	assert.NotNil(t, g.Scan(filepath.Join(t.TempDir(), "missing")))
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	writeROM(t, dir, "a.gb", testROM("ALPHA", logo.Nintendo))
	writeROM(t, dir, "b.gb", testROM("BRAVO", logo.Packed{}))

	g := testGBLogo(t, nil)
	require.Nil(t, g.Scan(dir))

	out := filepath.Join(t.TempDir(), "logos")
	require.Nil(t, g.Export(out))

	files, err := os.ReadDir(out)
	require.Nil(t, err)
	require.Len(t, files, 2)

	m, err := ReadImage(filepath.Join(out, crcBytes(logo.Nintendo[:])+".png"))
	require.Nil(t, err)

	r, err := NewROM(testROM("TEST", logo.Packed{}))
	require.Nil(t, err)
	require.Nil(t, r.SetImage(m, nil))
	assert.True(t, r.HasNintendoLogo())
}
