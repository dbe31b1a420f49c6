/*
   Copyright (c) Utkan Güngördü <utkan@freeconsole.org>

   This program is free software; you can redistribute it and/or modify
   it under the terms of the GNU General Public License as
   published by the Free Software Foundation; either version 3 or
   (at your option) any later version.

   This program is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of

   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the

   GNU General Public License for more details


   You should have received a copy of the GNU General Public
   License along with this program; if not, write to the
   Free Software Foundation, Inc.,
   51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.
*/

/*
  Prints an overview of TMX maps: tilesets, the layer tree with tile and object
  counts, map properties and how much data loading them took.

  Tilesets and templates shared between the maps given on the command line are
  read once.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/salviati/go-tmx/v2/tmx"
	"github.com/urfave/cli/v3"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "tmxdump",
		Usage:     "summarize TMX maps",
		ArgsUsage: "map.tmx...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "output format: text or yaml",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "read maps from this directory; paths must then be relative to it",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log files opened and cache hits",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("verbose") {
		tmx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var write func(io.Writer, []*Summary) error
	switch f := cmd.String("format"); f {
	case "text":
		write = WriteText
	case "yaml":
		write = WriteYAML
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", f), 2)
	}
	if cmd.NArg() == 0 {
		return cli.Exit("no map given", 2)
	}

	var reader tmx.ResourceReader = tmx.FilesystemReader{}
	if root := cmd.String("root"); root != "" {
		reader = tmx.FSReader{FS: os.DirFS(root)}
	}
	counter := &tmx.CountingReader{Reader: reader}
	loader := tmx.NewLoader(tmx.WithReader(counter))

	var summaries []*Summary
	for _, path := range cmd.Args().Slice() {
		s, err := Summarize(loader, counter, path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		summaries = append(summaries, s)
	}
	return write(os.Stdout, summaries)
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
