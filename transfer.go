package s3tools

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"gocloud.dev/blob"
)

// Storage errors are returned as-is, so callers see exactly what the
// underlying bucket reported.

func (s *Session) download(ctx context.Context, loc Location, w io.Writer) error {
	ref, err := s.bucket(ctx, loc)
	if err != nil {
		return err
	}
	defer ref.release()

	s.requests.WithLabelValues(methodDownload).Inc()
	err = ref.bucket().Download(ctx, loc.Key, w, nil)
	if err != nil {
		return err
	}
	slog.Debug("s3tools: downloaded object", "location", loc)
	return nil
}

// downloadFile downloads loc to a file in the temp dir named after the last
// element of its key. The file is only replaced once the download succeeds.
func (s *Session) downloadFile(ctx context.Context, loc Location) (string, error) {
	dir := s.tempDir()
	base := path.Base(loc.Key)
	f, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return "", err
	}
	tmpName := f.Name()

	err = s.download(ctx, loc, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return "", err
	}

	name := filepath.Join(dir, base)
	if err := os.Rename(tmpName, name); err != nil {
		os.Remove(tmpName)
		return "", err
	}
	return name, nil
}

func (s *Session) upload(ctx context.Context, loc Location, r io.Reader, contentType string) error {
	ref, err := s.bucket(ctx, loc)
	if err != nil {
		return err
	}
	defer ref.release()

	s.requests.WithLabelValues(methodUpload).Inc()
	err = ref.bucket().Upload(ctx, loc.Key, r, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return err
	}
	slog.Debug("s3tools: uploaded object", "location", loc)
	return nil
}

// list returns every key in loc's bucket starting with loc.Key.
func (s *Session) list(ctx context.Context, loc Location) ([]string, error) {
	ref, err := s.bucket(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer ref.release()

	s.requests.WithLabelValues(methodList).Inc()
	keys := make([]string, 0)
	iter := ref.bucket().List(&blob.ListOptions{Prefix: loc.Key})
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

func (s *Session) delete(ctx context.Context, loc Location) error {
	ref, err := s.bucket(ctx, loc)
	if err != nil {
		return err
	}
	defer ref.release()

	s.requests.WithLabelValues(methodDelete).Inc()
	return ref.bucket().Delete(ctx, loc.Key)
}

func (s *Session) exists(ctx context.Context, loc Location) (bool, error) {
	ref, err := s.bucket(ctx, loc)
	if err != nil {
		return false, err
	}
	defer ref.release()

	s.requests.WithLabelValues(methodAttributes).Inc()
	return ref.bucket().Exists(ctx, loc.Key)
}
