package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/kidspaint/internal/appstate"
)

// errUndecodable marks a file that opened but is not a readable image.
var errUndecodable = errors.New("not a readable image")

// loadImage decodes any format registered with the image package.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(f)
	if cerr := f.Close(); cerr != nil {
		log.Printf("error closing %q: %v", f.Name(), cerr)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", filepath.Base(path), errUndecodable, err)
	}
	return img, nil
}

// savePNG writes img to path, or to stdout when path is "-".
func savePNG(path string, img image.Image, stdout io.Writer) error {
	if path == "-" {
		return png.Encode(stdout, img)
	}
	return appstate.WritePNG(path, img)
}
