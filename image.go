package s3tools

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"golang.org/x/image/tiff"
)

// ImageCodec converts between images and their stored encoding.
type ImageCodec interface {
	Decode(r io.Reader) (image.Image, error)
	Encode(w io.Writer, img image.Image) error
	ContentType() string
}

// TIFFCodec stores images as Deflate-compressed TIFF. Compression is
// lossless, so decoded pixels match the encoded image.
type TIFFCodec struct{}

var _ = (ImageCodec)(TIFFCodec{})

var tiffOptions = &tiff.Options{
	Compression: tiff.Deflate,
}

func (TIFFCodec) Decode(r io.Reader) (image.Image, error) {
	img, err := tiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("s3tools: decoding tiff: %w", err)
	}
	slog.Debug("s3tools: decoded tiff", "bounds", img.Bounds(), "model", fmt.Sprintf("%T", img))
	return img, nil
}

func (TIFFCodec) Encode(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, tiffOptions)
}

func (TIFFCodec) ContentType() string {
	return "image/tiff"
}
