// seehuhn.de/go/mixpaint - a colour-mixing brush engine
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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/mixpaint/pixel"
)

func TestPaintBuiltin(t *testing.T) {
	for _, enc := range []pixel.Encoding{pixel.RGBA8, pixel.RGBA16, pixel.GrayA8} {
		sc := builtin
		sc.Strokes = nil
		plain, err := paint(&sc, enc)
		if err != nil {
			t.Fatal(err)
		}

		sc = builtin
		painted, err := paint(&sc, enc)
		if err != nil {
			t.Fatal(err)
		}
		if bytes.Equal(plain.Data(), painted.Data()) {
			t.Errorf("%s: strokes left the background unchanged", enc.Name())
		}
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "scene.json")
	data := `{
		"width": 40, "height": 20,
		"stripes": ["red", "blue"],
		"brush": {"shape": "ring", "width": 8, "height": 6, "thickness": 0.5},
		"weighting": "truncated",
		"strokes": [[[5, 10, 1], [35, 10, 0.5]], [[20, 5, 1]]]
	}`
	if err := os.WriteFile(fname, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := loadScene(fname)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Width != 40 || sc.Brush.Shape != "ring" || len(sc.Strokes) != 2 {
		t.Errorf("unexpected scene %+v", sc)
	}
	if _, err := paint(&sc, pixel.RGBA8); err != nil {
		t.Error(err)
	}

	sc.Composite = "smear"
	if _, err := paint(&sc, pixel.RGBA8); err == nil {
		t.Error("unknown composite accepted")
	}

	sc.Composite = ""
	sc.Stripes = []string{"no such colour"}
	if _, err := paint(&sc, pixel.RGBA8); err == nil {
		t.Error("unknown stripe colour accepted")
	}
}

func TestEncodingByName(t *testing.T) {
	for _, name := range []string{"rgba8", "rgba16", "graya8"} {
		if _, err := encodingByName(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := encodingByName("cmyk"); err == nil {
		t.Error("unknown encoding accepted")
	}
}
