package s3tools

import (
	"bytes"
	"context"
	"image"
	"io"
)

// GetBytes returns the full contents of the object named by ref.
func (s *Session) GetBytes(ctx context.Context, ref string) ([]byte, error) {
	var data []byte
	err := s.WithReader(ctx, ref, BackendMemory, func(r ReadBuffer) error {
		var err error
		data, err = io.ReadAll(r)
		return err
	})
	return data, err
}

// PutBytes replaces the object named by ref with data.
func (s *Session) PutBytes(ctx context.Context, ref string, data []byte) error {
	return s.WithWriter(ctx, ref, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// GetImage downloads and decodes the image named by ref.
func (s *Session) GetImage(ctx context.Context, ref string, backend Backend) (image.Image, error) {
	var img image.Image
	err := s.WithReader(ctx, ref, backend, func(r ReadBuffer) error {
		var err error
		img, err = s.codec.Decode(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// PutImage encodes img and uploads it to ref. An image that fails to encode
// leaves the object untouched.
func (s *Session) PutImage(ctx context.Context, ref string, img image.Image) error {
	return s.withWriter(ctx, ref, s.codec.ContentType(), func(w io.Writer) error {
		// Encode into a local buffer first; the codec may issue many
		// small writes.
		var buf bytes.Buffer
		if err := s.codec.Encode(&buf, img); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func (s *Session) Delete(ctx context.Context, ref string) error {
	loc, err := s.Resolve(ref)
	if err != nil {
		return err
	}
	return s.delete(ctx, loc)
}

func (s *Session) Exists(ctx context.Context, ref string) (bool, error) {
	loc, err := s.Resolve(ref)
	if err != nil {
		return false, err
	}
	return s.exists(ctx, loc)
}
