package s3tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"
	"gocloud.dev/blob"
)

// Session resolves references and moves objects between memory and storage.
// A Session is safe for concurrent use; the buffers it hands out are not.
type Session struct {
	cfg   Config
	codec ImageCodec

	lock          sync.Mutex
	defaultBucket string
	openers       map[string]BucketOpener

	buckets    *bucketCache
	requests   *prom.CounterVec
	registerer prom.Registerer
}

type Option func(s *Session)

// WithOpener makes scheme resolvable by this session through opener,
// overriding any globally registered scheme of the same name.
func WithOpener(scheme string, opener BucketOpener) Option {
	return func(s *Session) {
		s.openers[scheme] = opener
	}
}

// WithRegisterer registers the session's request metrics with r.
func WithRegisterer(r prom.Registerer) Option {
	return func(s *Session) {
		s.registerer = r
	}
}

func WithImageCodec(codec ImageCodec) Option {
	return func(s *Session) {
		s.codec = codec
	}
}

func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if cfg.DefaultScheme == "" {
		cfg.DefaultScheme = defaultScheme
	}
	if cfg.BucketCacheSize <= 0 {
		cfg.BucketCacheSize = defaultBucketCacheSize
	}

	s := &Session{
		cfg:           cfg,
		codec:         TIFFCodec{},
		defaultBucket: cfg.DefaultBucket,
		openers:       make(map[string]BucketOpener),
		buckets:       newBucketCache(cfg.BucketCacheSize),
		requests:      newRequestsCounter(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.registerer != nil {
		if err := s.registerer.Register(s.requests); err != nil {
			return nil, fmt.Errorf("s3tools: registering metrics: %w", err)
		}
	}
	return s, nil
}

// Close closes all open bucket handles.
func (s *Session) Close() error {
	return s.buckets.close()
}

// SetDefaultBucket sets the bucket used for bare keys. Concurrent calls are
// serialised; the last call wins.
func (s *Session) SetDefaultBucket(bucket string) {
	s.lock.Lock()
	s.defaultBucket = bucket
	s.lock.Unlock()
}

// DefaultBucket returns the bucket set on the session, falling back to the
// S3TOOLS_BUCKET environment variable.
func (s *Session) DefaultBucket() (string, error) {
	s.lock.Lock()
	bucket := s.defaultBucket
	s.lock.Unlock()

	if bucket != "" {
		return bucket, nil
	}
	if bucket = os.Getenv(BucketEnv); bucket != "" {
		return bucket, nil
	}

	slog.Error("s3tools: no bucket provided and neither SetDefaultBucket(), Config.DefaultBucket nor " +
		BucketEnv + " have been set; please provide a way to determine the bucket")
	return "", ErrNoBucket
}

func (s *Session) knownScheme(scheme string) bool {
	s.lock.Lock()
	_, ok := s.openers[scheme]
	s.lock.Unlock()
	return ok || lookupBucketScheme(scheme) != nil
}

// Resolve turns a reference into a Location. References of the form
// scheme://bucket/key name their bucket explicitly; anything else is a key
// in the default bucket.
func (s *Session) Resolve(ref string) (Location, error) {
	return s.resolve(ref, false)
}

func (s *Session) resolve(ref string, allowEmptyKey bool) (Location, error) {
	if scheme, _, ok := splitScheme(ref); ok {
		if !s.knownScheme(scheme) {
			return Location{}, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
		}
		return parseLocation(ref, allowEmptyKey)
	}

	if ref == "" && !allowEmptyKey {
		return Location{}, fmt.Errorf("%w: empty key", ErrInvalidLocation)
	}
	bucket, err := s.DefaultBucket()
	if err != nil {
		return Location{}, err
	}
	return Location{Scheme: s.cfg.DefaultScheme, Bucket: bucket, Key: ref}, nil
}

func (s *Session) opener(scheme string) (BucketOpener, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if o, ok := s.openers[scheme]; ok {
		return o, nil
	}
	fn := lookupBucketScheme(scheme)
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	o, err := fn(&s.cfg)
	if err != nil {
		return nil, err
	}
	s.openers[scheme] = o
	return o, nil
}

func (s *Session) bucket(ctx context.Context, loc Location) (*bucketRef, error) {
	o, err := s.opener(loc.Scheme)
	if err != nil {
		return nil, err
	}
	name := loc.Scheme + schemeSep + loc.Bucket
	return s.buckets.get(name, func() (*blob.Bucket, error) {
		slog.Debug("s3tools: opening bucket", "bucket", name)
		return o.OpenBucket(ctx, loc.Bucket)
	})
}

func (s *Session) tempDir() string {
	if s.cfg.TempDir != "" {
		return s.cfg.TempDir
	}
	return os.TempDir()
}
