package gblogo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const numWorkers = 10

func isROM(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".gb", ".gbc", ".sgb":
		return true
	}
	return false
}

func (g *GBLogo) findROMs(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() || !isROM(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (g *GBLogo) romWorker(ctx context.Context, base string, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			rom, err := LoadROM(file)
			if err != nil {
				if errors.Is(err, ErrROMTooSmall) {
					g.logger.Printf("Skipping \"%s\", too small\n", file)
					continue
				}
				errc <- err
				return
			}

			name, err := filepath.Rel(base, file)
			if err != nil {
				errc <- err
				return
			}

			if err := g.db.AddROM(name, rom); err != nil {
				errc <- err
				return
			}

			if !rom.HasNintendoLogo() {
				g.logger.Printf("Custom logo in \"%s\", with CRC \"%s\"\n", file, crcBytes(rom.Bytes()))
			}
			if _, ok := rom.HeaderChecksum(); !ok {
				g.logger.Printf("Bad header checksum in \"%s\"\n", file)
			}

			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path looking for cartridge images and records their logos in
// the catalogue.
func (g *GBLogo) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := g.findROMs(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := g.romWorker(ctx, dir, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
