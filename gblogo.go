/*
Package gblogo is a library for extracting and replacing the boot logo in
Nintendo Game Boy cartridge images, and for cataloguing the logos found in a
collection of them.
*/
package gblogo

import (
	"bytes"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/gblogo/logo"
)

// Options control how a logo is set.
type Options struct {
	// Quantize reduces the image to two colors first
	Quantize bool
	// FixChecksum recomputes the global checksum afterwards
	FixChecksum bool
}

// Get writes the logo in the cartridge image romFile to imageFile.
func Get(romFile, imageFile string) error {
	rom, err := LoadROM(romFile)
	if err != nil {
		return err
	}

	m, err := rom.Image()
	if err != nil {
		return err
	}

	return WriteImage(imageFile, m)
}

// Set replaces the logo in the cartridge image romFile with the one in
// imageFile and writes the result to outFile, which may be romFile. If o is
// nil the default options are used.
func Set(romFile, imageFile, outFile string, o *Options) error {
	rom, err := LoadROM(romFile)
	if err != nil {
		return err
	}

	m, err := ReadImage(imageFile)
	if err != nil {
		return err
	}

	if o == nil {
		o = &Options{}
	}

	if err := rom.SetImage(m, &logo.Options{Quantize: o.Quantize}); err != nil {
		return err
	}

	if o.FixChecksum {
		rom.FixGlobalChecksum()
	}

	return rom.Save(outFile)
}

// GBLogo manages a catalogue of cartridge logos.
type GBLogo struct {
	db     *LogoDB
	logger *log.Logger
}

// New opens the catalogue in file.
func New(file string, logger *log.Logger) (*GBLogo, error) {
	db, err := NewLogoDB(file)
	if err != nil {
		return nil, err
	}
	return &GBLogo{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the catalogue
func (g *GBLogo) Close() error {
	return g.db.Close()
}

// Export writes every catalogued logo to dir as a PNG named after its CRC.
func (g *GBLogo) Export(dir string) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}

	entries, err := g.db.Logos()
	if err != nil {
		return err
	}

	for _, e := range entries {
		m, err := logo.Decode(bytes.NewReader(e.Logo[:]))
		if err != nil {
			return err
		}

		file := filepath.Join(dir, e.CRC+".png")
		if err := WriteImage(file, m); err != nil {
			return err
		}
		g.logger.Printf("Wrote \"%s\", used by %d ROM(s)\n", file, e.ROMs)
	}

	return nil
}
