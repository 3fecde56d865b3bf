package palette

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const ext = ".palette"

// Loader finds palettes by name or path.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a Loader with the standard search directories.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "kidspaint", "palettes"),
		SystemDir: "/usr/share/kidspaint/palettes",
	}
}

// Load resolves name in this order: an existing file path, the embedded
// defaults, ConfigDir, then SystemDir. An empty name yields Default.
func (l *Loader) Load(name string) (*Palette, error) {
	if name == "" {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return parseFile(name)
	}

	filename := strings.ToLower(name)
	if !strings.HasSuffix(filename, ext) {
		filename += ext
	}

	if f, err := EmbeddedPalettes.Open("defaults/" + filename); err == nil {
		defer f.Close()
		return Parse(f)
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return parseFile(path)
		}
	}
	return nil, fmt.Errorf("palette '%s' not found", name)
}

// Names lists every palette reachable by name, sorted and de-duplicated.
func (l *Loader) Names() []string {
	seen := map[string]bool{}
	add := func(n string) {
		if strings.HasSuffix(n, ext) {
			seen[strings.TrimSuffix(n, ext)] = true
		}
	}
	if entries, err := fs.ReadDir(EmbeddedPalettes, "defaults"); err == nil {
		for _, e := range entries {
			add(e.Name())
		}
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				add(e.Name())
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseFile(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
