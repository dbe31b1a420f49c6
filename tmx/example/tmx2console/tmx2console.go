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
  Converts a TMX file to files which can be loaded to GBA.

  Data for each finite tile layer will be written in separate files. If the map "hello.tmx" has two layers "BG2" and
  "BG3", the data will be written into "hello.BG2.layer" and "hello.BG3.layer". Layers inside groups are exported
  too; object, image and infinite layers are skipped.

  You must use tiles from only one tileset in a layer.

  Layer Properties (GBA):

    Bitmap=true: The layer will be encoded into a 1-bit-per-tile stream. NilTiles will be encoded as 0, others as 1.
    Useful for generating obstruction layer data in a compact form.

    NilTile=ID: NilTile is ordinarily encoded into NTiles by default (that is just out of the valid range of tiles).
    This property will override the default.

    Compression=Method: rejected; this build has no GBA compressor.

    Affine=true: Exported tile-data will become 8-bits per tile; flip bits will be discarded.

    The size of a layer file is Width*Height*2 byte for normal layers and Width*Height for affine layers.
    When Bitmap=true is set, however, it is Width*Height/8 rounded up.
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/salviati/go-tmx/v2/tmx"
	"github.com/urfave/cli/v3"
)

var consoles = map[string]func() Console{
	"gba": func() Console { return new(GBA) },
}

func consoleNames() string {
	names := make([]string, 0, len(consoles))
	for name := range consoles {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "tmx2console",
		Usage:     "convert TMX tile layers to console screenblock data",
		ArgsUsage: "map.tmx...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "console",
				Value: "gba",
				Usage: "name of the target console (one of: " + consoleNames() + ")",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every file read and layer skipped",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if cmd.Bool("verbose") {
		tmx.SetLogger(logger)
	}

	newConsole, ok := consoles[cmd.String("console")]
	if !ok {
		return cli.Exit(fmt.Sprintf("no such console %q", cmd.String("console")), 2)
	}
	if cmd.NArg() == 0 {
		return cli.Exit("no map given", 2)
	}

	// One loader for every map, so shared tilesets are read once.
	loader := tmx.NewLoader()
	failed := 0
	for _, filename := range cmd.Args().Slice() {
		if err := Do(newConsole(), loader, filename); err != nil {
			slog.Error("conversion failed", "map", filename, "err", err)
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d maps failed", failed, cmd.NArg()), 1)
	}
	return nil
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
