package main

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/gblogo"
	"github.com/urfave/cli/v2"
)

const defaultDB = "gblogo.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(c.App.ErrWriter)
	}
	return logger
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "gblogo"
	app.Usage = "Game Boy ROM boot logo utility"
	app.Version = "1.0.0"
	app.ArgsUsage = "ROM IMAGE"
	app.ErrWriter = os.Stderr

	db := defaultDB
	if cwd, err := os.Getwd(); err == nil {
		db = filepath.Join(cwd, defaultDB)
	}

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "get",
			Aliases: []string{"g"},
			Usage:   "write the logo in ROM to IMAGE",
		},
		&cli.BoolFlag{
			Name:    "set",
			Aliases: []string{"s"},
			Usage:   "replace the logo in ROM with IMAGE",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write the modified ROM to `FILE` instead of overwriting it",
		},
		&cli.BoolFlag{
			Name:    "quantize",
			Aliases: []string{"q"},
			Usage:   "reduce IMAGE to two colors rather than treating anything not white as ink",
		},
		&cli.BoolFlag{
			Name:  "fix-checksum",
			Usage: "recompute the global checksum after replacing the logo",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GBLOGO_DB"},
			Value:   db,
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 2 {
			cli.ShowAppHelp(c)
			return cli.Exit("", 1)
		}

		rom, image := c.Args().Get(0), c.Args().Get(1)

		switch {
		case c.Bool("get") && !c.Bool("set"):
			if err := gblogo.Get(rom, image); err != nil {
				return cli.Exit(err, 1)
			}
		case c.Bool("set") && !c.Bool("get"):
			output := c.String("output")
			if output == "" {
				output = rom
			}

			if err := gblogo.Set(rom, image, output, &gblogo.Options{
				Quantize:    c.Bool("quantize"),
				FixChecksum: c.Bool("fix-checksum"),
			}); err != nil {
				return cli.Exit(err, 1)
			}
		default:
			return cli.Exit("invalid action", 1)
		}

		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:        "scan",
			Usage:       "Scan filesystem and catalogue logos",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelp(c, c.Command.Name)
					return cli.Exit("", 1)
				}

				g, err := gblogo.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer g.Close()

				if err := g.Scan(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Write each catalogued logo as a PNG",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelp(c, c.Command.Name)
					return cli.Exit("", 1)
				}

				g, err := gblogo.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer g.Close()

				if err := g.Export(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
