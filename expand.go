package s3tools

import (
	"context"
	"path"
	"path/filepath"
	"strings"
)

const globMeta = `*?[`

// Keys lists the objects whose keys start with prefix. A fully-qualified
// prefix yields fully-qualified references; a bare prefix is listed in the
// default bucket and yields bare keys.
func (s *Session) Keys(ctx context.Context, prefix string) ([]string, error) {
	loc, err := s.resolve(prefix, true)
	if err != nil {
		return nil, err
	}
	keys, err := s.list(ctx, loc)
	if err != nil {
		return nil, err
	}

	if _, _, ok := splitScheme(prefix); ok {
		for i, key := range keys {
			keys[i] = Location{Scheme: loc.Scheme, Bucket: loc.Bucket, Key: key}.String()
		}
	}
	return keys, nil
}

// Expand returns the references matching pattern. Patterns with a storage
// scheme list the bucket: the key part is a prefix, or a path.Match pattern
// if it contains glob metacharacters. Other patterns are matched against the
// local filesystem with filepath.Glob.
func (s *Session) Expand(ctx context.Context, pattern string) ([]string, error) {
	if _, _, ok := splitScheme(pattern); !ok {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		if matches == nil {
			matches = []string{}
		}
		return matches, nil
	}

	loc, err := s.resolve(pattern, true)
	if err != nil {
		return nil, err
	}
	i := strings.IndexAny(loc.Key, globMeta)
	if i < 0 {
		return s.Keys(ctx, pattern)
	}
	// Reject malformed patterns before listing.
	if _, err := path.Match(loc.Key, ""); err != nil {
		return nil, err
	}

	listLoc := loc
	listLoc.Key = loc.Key[:i]
	keys, err := s.list(ctx, listLoc)
	if err != nil {
		return nil, err
	}
	matches := make([]string, 0, len(keys))
	for _, key := range keys {
		ok, err := path.Match(loc.Key, key)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, Location{Scheme: loc.Scheme, Bucket: loc.Bucket, Key: key}.String())
		}
	}
	return matches, nil
}
