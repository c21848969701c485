package s3tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func putTestKeys(t *testing.T, s *Session, refs ...string) {
	t.Helper()
	for _, ref := range refs {
		if err := s.PutBytes(context.Background(), ref, []byte(ref)); err != nil {
			t.Fatalf("PutBytes(%s) error = %v", ref, err)
		}
	}
}

func TestExpand_LocalGlob(t *testing.T) {
	s, _ := newTestSession(t, newTestConfig(t))
	dir := t.TempDir()
	for _, name := range []string{"a.tif", "b.tif", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
	}

	matches, err := s.Expand(context.Background(), filepath.Join(dir, "*.tif"))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	expected := []string{filepath.Join(dir, "a.tif"), filepath.Join(dir, "b.tif")}
	if !reflect.DeepEqual(matches, expected) {
		t.Errorf("Expand() %v != expected %v", matches, expected)
	}

	matches, err = s.Expand(context.Background(), filepath.Join(dir, "*.png"))
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	} else if matches == nil || len(matches) != 0 {
		t.Errorf("Expand() %v != expected empty slice", matches)
	}
}

func TestExpand_RemotePrefix(t *testing.T) {
	s, _ := newTestSession(t, newTestConfig(t))
	putTestKeys(t, s, "s3://bucket/prefix/a", "s3://bucket/prefix/b", "s3://bucket/other/c")

	matches, err := s.Expand(context.Background(), "s3://bucket/prefix")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	expected := []string{"s3://bucket/prefix/a", "s3://bucket/prefix/b"}
	if !reflect.DeepEqual(matches, expected) {
		t.Errorf("Expand() %v != expected %v", matches, expected)
	}
}

func TestExpand_RemoteGlob(t *testing.T) {
	s, _ := newTestSession(t, newTestConfig(t))
	putTestKeys(t, s,
		"s3://bucket/prefix/a.tif",
		"s3://bucket/prefix/b.txt",
		"s3://bucket/prefix/c.tif",
		"s3://bucket/prefix/sub/d.tif",
		"s3://bucket/other/e.tif")

	matches, err := s.Expand(context.Background(), "s3://bucket/prefix/*.tif")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	expected := []string{"s3://bucket/prefix/a.tif", "s3://bucket/prefix/c.tif"}
	if !reflect.DeepEqual(matches, expected) {
		t.Errorf("Expand() %v != expected %v", matches, expected)
	}

	matches, err = s.Expand(context.Background(), "s3://bucket/*/?.tif")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	expected = []string{"s3://bucket/other/e.tif", "s3://bucket/prefix/a.tif", "s3://bucket/prefix/c.tif"}
	if !reflect.DeepEqual(matches, expected) {
		t.Errorf("Expand() %v != expected %v", matches, expected)
	}
}

func TestExpand_UnknownScheme(t *testing.T) {
	s, _ := newTestSession(t, newTestConfig(t))

	_, err := s.Expand(context.Background(), "unregistered://bucket/prefix")
	if !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("Expand() error %v != expected ErrUnknownScheme", err)
	}
}

func TestKeys(t *testing.T) {
	s, _ := newTestSession(t, newTestConfig(t))
	putTestKeys(t, s, "prefix/a", "prefix/b", "other/c")

	keys, err := s.Keys(context.Background(), "prefix")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	expected := []string{"prefix/a", "prefix/b"}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("Keys(prefix) %v != expected %v", keys, expected)
	}

	for _, prefix := range []string{"s3://" + testBucket, "s3://" + testBucket + "/"} {
		keys, err = s.Keys(context.Background(), prefix)
		if err != nil {
			t.Fatalf("Keys(%s) error = %v", prefix, err)
		}
		expected = []string{
			"s3://" + testBucket + "/other/c",
			"s3://" + testBucket + "/prefix/a",
			"s3://" + testBucket + "/prefix/b",
		}
		if !reflect.DeepEqual(keys, expected) {
			t.Errorf("Keys(%s) %v != expected %v", prefix, keys, expected)
		}
	}
}

func TestKeys_Empty(t *testing.T) {
	s, _ := newTestSession(t, newTestConfig(t))

	keys, err := s.Keys(context.Background(), "s3://empty/nothing")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	} else if keys == nil || len(keys) != 0 {
		t.Errorf("Keys() %v != expected empty slice", keys)
	}
}
