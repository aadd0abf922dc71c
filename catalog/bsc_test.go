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

package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bscLine builds one fixed-column catalog line: number, name, then the
// galactic longitude/latitude and magnitude columns at offsets 90, 96
// and 102.
func bscLine(num int, name string, lon, lat, mag float64) string {
	return fmt.Sprintf("%4d%-10s%76s%6.2f%6.2f%5.2f", num, name, "", lon, lat, mag)
}

func TestRead(t *testing.T) {
	input := strings.Join([]string{
		bscLine(2061, "58Alp Ori", 199.79, -8.96, 0.50),
		bscLine(1790, "24Gam Ori", 196.93, -15.95, 1.64),
		"  42too short",
		bscLine(9999, "nova", 0, 0, 0)[:102] + " bad ", // unparsable magnitude column
	}, "\n")

	cat, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, cat, 2)

	alp := cat[2061]
	assert.Equal(t, 2061, alp.Num)
	assert.Equal(t, "58Alp Ori", alp.Name)
	assert.InDelta(t, 199.79-360, alp.Lon, 1e-9) // wrapped to (-180, 180]
	assert.InDelta(t, -8.96, alp.Lat, 1e-9)
	assert.InDelta(t, 0.50, alp.Mag, 1e-9)

	gam := cat[1790]
	assert.InDelta(t, 196.93-360, gam.Lon, 1e-9)
	assert.InDelta(t, 1.64, gam.Mag, 1e-9)
}

func TestReadKeepsWesternLongitude(t *testing.T) {
	cat, err := Read(strings.NewReader(bscLine(1, "", 90.25, 10, 2)))
	require.NoError(t, err)
	assert.InDelta(t, 90.25, cat[1].Lon, 1e-9)
}

func TestReadFigures(t *testing.T) {
	input := strings.Join([]string{
		"# Orion",
		"2061 1839",
		"",
		"1839 1790",
		"2061 1948  # belt",
	}, "\n")

	pairs, err := ReadFigures(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{2061, 1839}, {1839, 1790}}, pairs)
}

func TestReadFiguresMalformed(t *testing.T) {
	_, err := ReadFigures(strings.NewReader("2061"))
	assert.Error(t, err)

	_, err = ReadFigures(strings.NewReader("2061 abc"))
	assert.Error(t, err)
}
