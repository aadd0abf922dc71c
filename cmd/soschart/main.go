// seehuhn.de/go/sphere - drawing on the equirectangular projection of a sphere
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Soschart renders star charts and test images on the equirectangular
// projection of the sphere.
package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/sphere"
	"seehuhn.de/go/sphere/catalog"
	"seehuhn.de/go/sphere/chart"
)

var (
	height  int
	outName string
	verbose bool
)

func newCanvas() (*sphere.Canvas, error) {
	if verbose {
		sphere.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	return sphere.New(height)
}

var rootCmd = &cobra.Command{
	Use:           "soschart",
	Short:         "render star charts on an equirectangular sphere raster",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "render a test image with one of each primitive",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCanvas()
		if err != nil {
			return err
		}

		if err := c.Disk(30, -60, 25); err != nil {
			return err
		}
		c.Flush(color.NRGBA{R: 255, A: 255})

		if err := c.Ring(-20, 40, 60, 4); err != nil {
			return err
		}
		c.Flush(color.NRGBA{G: 255, A: 200})

		if err := c.Line(-45, -150, 60, 120, 3); err != nil {
			return err
		}
		c.Flush(color.NRGBA{B: 255, A: 200})

		if err := c.DiskHighlight(30, -60, 25); err != nil {
			return err
		}

		return c.Save(outName)
	},
}

var (
	gridSpacing float64
	gridWidth   float64
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "render a coordinate graticule",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCanvas()
		if err != nil {
			return err
		}

		blue := color.NRGBA{B: 255, A: 128}
		if err := chart.Graticule(c, gridSpacing, gridWidth, blue); err != nil {
			return err
		}

		// emphasize the equator
		if err := c.Ring(90, 0, 180, 2*gridWidth); err != nil {
			return err
		}
		c.Flush(color.NRGBA{R: 255, B: 255, A: 160})

		return c.Save(outName)
	},
}

var (
	catName     string
	figName     string
	lineWidth   float64
	maxMag      float64
	starScale   float64
	figuresOnly bool
)

var figuresCmd = &cobra.Command{
	Use:   "figures",
	Short: "render constellation figures from a bright star catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.ReadFile(catName)
		if err != nil {
			return fmt.Errorf("reading catalog: %w", err)
		}
		pairs, err := catalog.ReadFiguresFile(figName)
		if err != nil {
			return fmt.Errorf("reading figures: %w", err)
		}

		c, err := newCanvas()
		if err != nil {
			return err
		}

		lines := color.NRGBA{R: 180, G: 180, B: 255, A: 255}
		if err := chart.Figures(c, cat, pairs, lineWidth, lines); err != nil {
			return err
		}
		if !figuresOnly {
			if err := chart.Stars(c, cat, maxMag, starScale, sphere.White); err != nil {
				return err
			}
		}

		return c.Save(outName)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&height, "height", 1024,
		"image height in pixels (width is twice this)")
	rootCmd.PersistentFlags().StringVarP(&outName, "out", "o", "soschart.png",
		"output file name (.png, .tif)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	gridCmd.Flags().Float64Var(&gridSpacing, "spacing", 10,
		"graticule spacing in degrees")
	gridCmd.Flags().Float64Var(&gridWidth, "width", 0.5,
		"line width in degrees")

	figuresCmd.Flags().StringVar(&catName, "catalog", "bsc5.dat",
		"bright star catalog file")
	figuresCmd.Flags().StringVar(&figName, "figures", "figures.dat",
		"constellation figure file")
	figuresCmd.Flags().Float64Var(&lineWidth, "width", 0.5,
		"figure line width in degrees")
	figuresCmd.Flags().Float64Var(&maxMag, "mag", 4.5,
		"draw stars brighter than this magnitude")
	figuresCmd.Flags().Float64Var(&starScale, "scale", 0.25,
		"star diameter is (8-mag) times this, in degrees")
	figuresCmd.Flags().BoolVar(&figuresOnly, "no-stars", false,
		"draw figure lines only")

	rootCmd.AddCommand(demoCmd, gridCmd, figuresCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
