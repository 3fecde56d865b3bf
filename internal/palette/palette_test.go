package palette

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseKeepsOrderAndNames(t *testing.T) {
	p, err := Parse(strings.NewReader("Name: Test\n# comment\nSun: #FFCC00\nSea: navy\nGlass: #11223344\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Name != "Test" || len(p.Colors) != 3 {
		t.Fatalf("unexpected palette %+v", p)
	}
	if p.Colors[1].RGBA != (color.RGBA{0, 0, 128, 255}) {
		t.Fatalf("navy parsed as %+v", p.Colors[1].RGBA)
	}
	if p.Colors[2].RGBA != (color.RGBA{0x11, 0x22, 0x33, 0x44}) {
		t.Fatalf("alpha parsed as %+v", p.Colors[2].RGBA)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Bad: #12345\n")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Parse(strings.NewReader("Name: Empty\n")); err == nil {
		t.Fatal("expected error for empty palette")
	}
}

func TestEmbeddedKidsMatchesDefault(t *testing.T) {
	p, err := NewLoader().Load("kids")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := Default()
	if len(p.Colors) != len(def.Colors) {
		t.Fatalf("got %d colors", len(p.Colors))
	}
	for i := range def.Colors {
		if p.Colors[i] != def.Colors[i] {
			t.Errorf("color %d: %+v vs %+v", i, p.Colors[i], def.Colors[i])
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Default()); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Name != "Kids" || len(p.Colors) != 10 {
		t.Fatalf("unexpected palette %+v", p)
	}
}

func TestLoaderSearchesConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.palette"), []byte("Name: Mine\nTeal: #008080\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}
	p, err := l.Load("mine")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name != "Mine" {
		t.Fatalf("name %q", p.Name)
	}
	names := l.Names()
	want := []string{"crayons", "kids", "mine", "pastel"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("names %v", names)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected not found")
	}
}

func TestLookupAndIndex(t *testing.T) {
	p := Default()
	c, ok := p.Lookup("mint")
	if !ok {
		t.Fatal("mint not found")
	}
	if p.Index(c) != 6 {
		t.Fatalf("index %d", p.Index(c))
	}
	if p.Index(color.RGBA{1, 2, 3, 4}) != -1 {
		t.Fatal("unexpected index")
	}
}
