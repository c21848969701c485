package s3tools

import (
	"fmt"
	"strings"
)

const schemeSep = "://"

// Location identifies a single object.
type Location struct {
	Scheme string
	Bucket string
	Key    string
}

func (l Location) String() string {
	return l.Scheme + schemeSep + l.Bucket + "/" + l.Key
}

// splitScheme returns the scheme of a fully-qualified reference, and the
// remainder after "://". ok is false for bare keys.
func splitScheme(ref string) (scheme, rest string, ok bool) {
	i := strings.Index(ref, schemeSep)
	if i <= 0 {
		return "", "", false
	}
	scheme = ref[:i]
	for _, c := range scheme {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.') {
			return "", "", false
		}
	}
	return scheme, ref[i+len(schemeSep):], true
}

// ParseLocation parses a fully-qualified reference of the form
// scheme://bucket/key.
func ParseLocation(ref string) (Location, error) {
	return parseLocation(ref, false)
}

// parseLocation is ParseLocation, optionally accepting an empty key so that
// listing prefixes such as "s3://bucket" or "s3://bucket/" can be parsed.
func parseLocation(ref string, allowEmptyKey bool) (Location, error) {
	scheme, rest, ok := splitScheme(ref)
	if !ok {
		return Location{}, fmt.Errorf("%w: %q has no scheme", ErrInvalidLocation, ref)
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("%w: %q has an empty bucket", ErrInvalidLocation, ref)
	} else if key == "" && !allowEmptyKey {
		return Location{}, fmt.Errorf("%w: %q has an empty key", ErrInvalidLocation, ref)
	}
	return Location{Scheme: scheme, Bucket: bucket, Key: key}, nil
}
