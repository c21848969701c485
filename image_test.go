package s3tools

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"testing"

	"gocloud.dev/blob/fileblob"
)

func testGray16(w, h int) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(x*1021 + y*7919)})
		}
	}
	return img
}

func checkSamePixels(t *testing.T, got, expected image.Image) {
	t.Helper()

	if got.Bounds() != expected.Bounds() {
		t.Fatalf("bounds %v != expected %v", got.Bounds(), expected.Bounds())
	}
	b := expected.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.Gray16Model.Convert(got.At(x, y))
			e := color.Gray16Model.Convert(expected.At(x, y))
			if g != e {
				t.Fatalf("pixel (%d, %d) %v != expected %v", x, y, g, e)
			}
		}
	}
}

func TestImageRoundTrip(t *testing.T) {
	s, _ := newTestSession(t, newTestConfig(t))
	ctx := context.Background()

	gray := image.NewGray(image.Rect(0, 0, 31, 17))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i * 13)
	}
	cases := map[string]image.Image{
		"images/gray16.tif":          testGray16(64, 48),
		"s3://explicit/gray8.tif":    gray,
		"images/single-pixel.tif":    testGray16(1, 1),
		"images/nested/wide.tif":     testGray16(300, 2),
		"s3://explicit/deep/sub.tif": testGray16(7, 200),
	}
	for ref, img := range cases {
		if err := s.PutImage(ctx, ref, img); err != nil {
			t.Errorf("PutImage(%s) error = %v", ref, err)
			continue
		}
		for _, backend := range []Backend{BackendMemory, BackendFile} {
			got, err := s.GetImage(ctx, ref, backend)
			if err != nil {
				t.Errorf("GetImage(%s, %v) error = %v", ref, backend, err)
				continue
			}
			checkSamePixels(t, got, img)
		}
	}
}

func TestGetImage_Gray16Type(t *testing.T) {
	s, _ := newTestSession(t, newTestConfig(t))
	ctx := context.Background()

	if err := s.PutImage(ctx, "typed.tif", testGray16(8, 8)); err != nil {
		t.Fatalf("PutImage() error = %v", err)
	}
	img, err := s.GetImage(ctx, "typed.tif", BackendMemory)
	if err != nil {
		t.Fatalf("GetImage() error = %v", err)
	}
	if _, ok := img.(*image.Gray16); !ok {
		t.Errorf("GetImage() returned %T, expected *image.Gray16", img)
	}
}

func TestPutImage_ContentType(t *testing.T) {
	s, o := newTestSession(t, newTestConfig(t))
	ctx := context.Background()

	if err := s.PutImage(ctx, "typed.tif", testGray16(4, 4)); err != nil {
		t.Fatalf("PutImage() error = %v", err)
	}

	b, err := fileblob.OpenBucket(filepath.Join(o.root, testBucket), nil)
	if err != nil {
		t.Fatalf("OpenBucket() error = %v", err)
	}
	defer b.Close()
	attrs, err := b.Attributes(ctx, "typed.tif")
	if err != nil {
		t.Fatalf("Attributes() error = %v", err)
	} else if attrs.ContentType != "image/tiff" {
		t.Errorf("ContentType %s != expected image/tiff", attrs.ContentType)
	}
}

func TestGetImage_NotAnImage(t *testing.T) {
	s, _ := newTestSession(t, newTestConfig(t))
	ctx := context.Background()

	if err := s.PutBytes(ctx, "bogus.tif", []byte("definitely not a tiff")); err != nil {
		t.Fatalf("PutBytes() error = %v", err)
	}
	img, err := s.GetImage(ctx, "bogus.tif", BackendMemory)
	if err == nil {
		t.Error("GetImage() succeeded on non-image data")
	}
	if img != nil {
		t.Error("GetImage() returned non-nil image")
	}
}

var errEncode = errors.New("encode failed")

type failingCodec struct {
	TIFFCodec
}

func (failingCodec) Encode(w io.Writer, img image.Image) error {
	w.Write([]byte("partial"))
	return errEncode
}

func TestPutImage_EncodeError(t *testing.T) {
	s, _ := newTestSession(t, newTestConfig(t), WithImageCodec(failingCodec{}))
	ctx := context.Background()

	err := s.PutImage(ctx, "unencodable.tif", testGray16(2, 2))
	if !errors.Is(err, errEncode) {
		t.Errorf("PutImage() error %v != expected %v", err, errEncode)
	}
	exists, err := s.Exists(ctx, "unencodable.tif")
	if err != nil {
		t.Errorf("Exists() error = %v", err)
	} else if exists {
		t.Error("object exists after failed encode")
	}
}
