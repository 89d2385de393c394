// Package codec reads and writes PNG images through darkroom's bild processor.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/gojek/darkroom/pkg/processor/native"
)

// ErrNotPNG is returned when a payload decodes as some other image format.
var ErrNotPNG = errors.New("not a PNG image")

type processor interface {
	Decode(data []byte) (image.Image, string, error)
	Encode(img image.Image, format string) ([]byte, error)
}

// Codec decodes arbitrary PNGs and always encodes PNG output.
type Codec struct {
	p processor
}

// New returns a Codec that encodes with the given PNG compression level.
func New(level png.CompressionLevel) *Codec {
	return &Codec{
		p: native.NewBildProcessorWithCompression(&native.CompressionOptions{
			JpegQuality:         100,
			PngCompressionLevel: level,
		}),
	}
}

func (c *Codec) Decode(data []byte) (image.Image, error) {
	img, format, err := c.p.Decode(data)
	if err != nil {
		return nil, err
	}
	if format != "png" {
		return nil, fmt.Errorf("%w (got %s)", ErrNotPNG, format)
	}
	return img, nil
}

func (c *Codec) Encode(img image.Image) ([]byte, error) {
	data, err := c.p.Encode(img, "png")
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return data, nil
}
