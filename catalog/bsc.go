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

// Package catalog reads the fixed-column Yale Bright Star Catalog
// (bsc5.dat) and the star-pair files describing constellation figures.
// It produces plain coordinate/magnitude records; mapping them to draw
// calls is left to package chart.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"seehuhn.de/go/sphere"
)

// Star is one catalog record.  Coordinates are galactic, in degrees.
type Star struct {
	Num  int     // catalog sequence number
	Name string  // Bayer/Flamsteed designation, may be empty
	Lon  float64 // galactic longitude, reduced to (-180, 180]
	Lat  float64 // galactic latitude
	Mag  float64 // visual magnitude (lower is brighter)
}

// Catalog maps catalog numbers to records.
type Catalog map[int]Star

// Byte columns of the bsc5.dat fixed-width format.
const (
	numStart, numEnd   = 0, 4
	nameStart, nameEnd = 4, 14
	lonStart, lonEnd   = 90, 96
	latStart, latEnd   = 96, 102
	magStart, magEnd   = 102, 107
)

// Read parses a bright star catalog in bsc5.dat format.  Lines that
// are too short or have unparsable coordinate fields (novae, objects
// without photometry) are skipped, matching the tolerant reading the
// format requires.  Longitudes above 180 are wrapped to the negative
// range.
func Read(r io.Reader) (Catalog, error) {
	cat := make(Catalog)
	skipped := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < magEnd {
			skipped++
			continue
		}

		num, err := strconv.Atoi(strings.TrimSpace(line[numStart:numEnd]))
		if err != nil {
			skipped++
			continue
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(line[lonStart:lonEnd]), 64)
		if err != nil {
			skipped++
			continue
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(line[latStart:latEnd]), 64)
		if err != nil {
			skipped++
			continue
		}
		mag, err := strconv.ParseFloat(strings.TrimSpace(line[magStart:magEnd]), 64)
		if err != nil {
			skipped++
			continue
		}

		if lon > 180 {
			lon -= 360
		}
		cat[num] = Star{
			Num:  num,
			Name: strings.TrimSpace(line[nameStart:nameEnd]),
			Lon:  lon,
			Lat:  lat,
			Mag:  mag,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sphere.Logger().Debug("catalog read", "stars", len(cat), "skipped", skipped)
	return cat, nil
}

// ReadFile reads a catalog from a file.
func ReadFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// ReadFigures parses a constellation figure file: one star pair per
// line, given as two catalog numbers separated by whitespace.  Lines
// containing '#' are comments.
func ReadFigures(r io.Reader) ([][2]int, error) {
	var pairs [][2]int

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.Contains(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: need two catalog numbers, got %q", lineNo, line)
		}
		a, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		b, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		pairs = append(pairs, [2]int{a, b})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// ReadFiguresFile reads a figure file from disk.
func ReadFiguresFile(path string) ([][2]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFigures(f)
}
