//go:build linux || freebsd || openbsd || netbsd || dragonfly

// Package clipboard moves finished drawings to and from the system
// clipboard as PNG data.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"sync"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	// ErrNoImage is returned by ReadImage when the clipboard holds no picture.
	ErrNoImage = errors.New("clipboard does not contain image data")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// ensureInit runs the backend's setup once. Without a display it fails
// fast instead of blocking on a connection attempt.
func ensureInit(setup func() error) error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = setup()
	})
	return initErr
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	return png.Decode(bytes.NewReader(data))
}
