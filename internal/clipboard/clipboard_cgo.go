//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"image"

	"golang.design/x/clipboard"
)

// WriteImage encodes img as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(clipboard.Init); err != nil {
		return err
	}
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

// ReadImage decodes the PNG image currently on the clipboard.
func ReadImage() (image.Image, error) {
	if err := ensureInit(clipboard.Init); err != nil {
		return nil, err
	}
	return decodePNG(clipboard.Read(clipboard.FmtImage))
}
