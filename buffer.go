package s3tools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
)

type Mode int

const (
	ModeRead Mode = iota + 1
	ModeWrite
)

// ParseMode accepts the file-style mode strings "r", "rb", "w" and "wb".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "r", "rb":
		return ModeRead, nil
	case "w", "wb":
		return ModeWrite, nil
	}
	return 0, fmt.Errorf("%w: %q, only read (rb) and write (wb) are supported", ErrUnsupportedMode, s)
}

func (m Mode) valid() bool {
	return m == ModeRead || m == ModeWrite
}

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "rb"
	case ModeWrite:
		return "wb"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Backend selects where a read buffer keeps the object's contents.
type Backend int

const (
	// BackendMemory holds the whole object in memory.
	BackendMemory Backend = iota + 1
	// BackendFile downloads the object to a local temp file, which is not
	// removed on Close.
	BackendFile
)

func ParseBackend(s string) (Backend, error) {
	switch s {
	case "memory":
		return BackendMemory, nil
	case "file":
		return BackendFile, nil
	}
	return 0, fmt.Errorf("%w: %q, must be one of memory or file", ErrUnsupportedBackend, s)
}

func (b Backend) valid() bool {
	return b == BackendMemory || b == BackendFile
}

func (b Backend) String() string {
	switch b {
	case BackendMemory:
		return "memory"
	case BackendFile:
		return "file"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// Buffer is an object opened for reading or writing. Reading a write buffer
// fails with ErrWriteOnly and writing a read buffer with ErrReadOnly.
type Buffer interface {
	io.ReadWriteCloser

	// Cancel releases the buffer. For write buffers nothing is uploaded.
	Cancel() error
}

// ReadBuffer holds the full contents of an object, positioned at the start.
type ReadBuffer interface {
	Buffer
	io.ReaderAt
	io.Seeker

	Size() int64
	Location() Location
}

type memReadBuffer struct {
	*bytes.Reader
	loc Location
}

var _ = (ReadBuffer)((*memReadBuffer)(nil))

func (b *memReadBuffer) Write([]byte) (int, error) {
	return 0, ErrReadOnly
}

func (b *memReadBuffer) Location() Location {
	return b.loc
}

func (b *memReadBuffer) Close() error {
	return nil
}

func (b *memReadBuffer) Cancel() error {
	return nil
}

type fileReadBuffer struct {
	*os.File
	size int64
	loc  Location
}

var _ = (ReadBuffer)((*fileReadBuffer)(nil))

func (b *fileReadBuffer) Write([]byte) (int, error) {
	return 0, ErrReadOnly
}

func (b *fileReadBuffer) Size() int64 {
	return b.size
}

func (b *fileReadBuffer) Location() Location {
	return b.loc
}

func (b *fileReadBuffer) Cancel() error {
	return b.File.Close()
}

// WriteBuffer collects an object's contents in memory. Nothing is uploaded
// until Close, which uploads exactly once.
type WriteBuffer struct {
	s           *Session
	ctx         context.Context
	loc         Location
	contentType string

	buf    bytes.Buffer
	closed bool
	err    error
}

var _ = (Buffer)((*WriteBuffer)(nil))

func (w *WriteBuffer) Write(b []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	return w.buf.Write(b)
}

func (w *WriteBuffer) Read([]byte) (int, error) {
	return 0, ErrWriteOnly
}

// Len returns the number of bytes written so far.
func (w *WriteBuffer) Len() int {
	return w.buf.Len()
}

func (w *WriteBuffer) Location() Location {
	return w.loc
}

// Close uploads the buffer. Subsequent calls return the result of the first.
func (w *WriteBuffer) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true

	w.err = w.s.upload(w.ctx, w.loc, bytes.NewReader(w.buf.Bytes()), w.contentType)
	w.buf = bytes.Buffer{}
	return w.err
}

// Cancel discards the buffer without uploading. It is a no-op after Close.
func (w *WriteBuffer) Cancel() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.buf = bytes.Buffer{}
	return nil
}

// OpenReader downloads the object named by ref.
func (s *Session) OpenReader(ctx context.Context, ref string, backend Backend) (ReadBuffer, error) {
	if !backend.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedBackend, backend)
	}
	loc, err := s.Resolve(ref)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendMemory:
		var buf bytes.Buffer
		err = s.download(ctx, loc, &buf)
		if err != nil {
			return nil, err
		}
		return &memReadBuffer{Reader: bytes.NewReader(buf.Bytes()), loc: loc}, nil
	case BackendFile:
		name, err := s.downloadFile(ctx, loc)
		if err != nil {
			return nil, err
		}
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		fi, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, err
		}
		return &fileReadBuffer{File: f, size: fi.Size(), loc: loc}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedBackend, backend)
}

// OpenWriter returns an empty buffer which is uploaded to ref on Close.
func (s *Session) OpenWriter(ctx context.Context, ref string) (*WriteBuffer, error) {
	return s.openWriter(ctx, ref, "application/octet-stream")
}

func (s *Session) openWriter(ctx context.Context, ref, contentType string) (*WriteBuffer, error) {
	loc, err := s.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return &WriteBuffer{s: s, ctx: ctx, loc: loc, contentType: contentType}, nil
}

// Open opens ref for reading or writing. Only reads support BackendFile.
func (s *Session) Open(ctx context.Context, ref string, mode Mode, backend Backend) (Buffer, error) {
	if !mode.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, mode)
	}
	if !backend.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedBackend, backend)
	}

	switch mode {
	case ModeRead:
		r, err := s.OpenReader(ctx, ref, backend)
		if err != nil {
			return nil, err
		}
		return r, nil
	case ModeWrite:
		switch backend {
		case BackendMemory:
			w, err := s.OpenWriter(ctx, ref)
			if err != nil {
				return nil, err
			}
			return w, nil
		case BackendFile:
			return nil, fmt.Errorf("%w: %v backend is read-only", ErrUnsupportedBackend, backend)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedBackend, backend)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedMode, mode)
}

// WithReader calls fn with a read buffer for ref, releasing it afterwards.
func (s *Session) WithReader(ctx context.Context, ref string, backend Backend, fn func(r ReadBuffer) error) error {
	r, err := s.OpenReader(ctx, ref, backend)
	if err != nil {
		return err
	}
	defer r.Close()

	return fn(r)
}

// WithWriter calls fn with a write buffer for ref. The buffer is uploaded
// only if fn returns nil; if fn fails or panics nothing is written.
func (s *Session) WithWriter(ctx context.Context, ref string, fn func(w io.Writer) error) error {
	return s.withWriter(ctx, ref, "application/octet-stream", fn)
}

func (s *Session) withWriter(ctx context.Context, ref, contentType string, fn func(w io.Writer) error) error {
	w, err := s.openWriter(ctx, ref, contentType)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			w.Cancel()
		}
	}()

	err = fn(w)
	if err != nil {
		return err
	}
	committed = true
	return w.Close()
}
