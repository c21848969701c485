package test_util

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/akmistry/s3tools"
)

const (
	NumTestObjects = 100
)

func checkExists(t *testing.T, s *s3tools.Session, ref string, value []byte) {
	t.Helper()

	exists, err := s.Exists(context.Background(), ref)
	if err != nil {
		t.Errorf("Exists(%s) error = %v", ref, err)
	} else if !exists {
		t.Errorf("Exists(%s) returned false", ref)
	}

	data, err := s.GetBytes(context.Background(), ref)
	if err != nil {
		t.Errorf("GetBytes(%s) error = %v", ref, err)
	}
	if !bytes.Equal(data, value) {
		t.Errorf("GetBytes(%s) %v != expected %v", ref, data, value)
	}
}

func checkNotExists(t *testing.T, s *s3tools.Session, ref string) {
	t.Helper()

	exists, err := s.Exists(context.Background(), ref)
	if err != nil {
		t.Errorf("Exists(%s) error = %v", ref, err)
	} else if exists {
		t.Errorf("Exists(%s) returned true", ref)
	}

	data, err := s.GetBytes(context.Background(), ref)
	if !s3tools.IsNotExist(err) {
		t.Errorf("GetBytes(%s) error %v is not a not-found error", ref, err)
	}
	if data != nil {
		t.Errorf("GetBytes(%s) returned non-nil", ref)
	}
}

// PopulateTestObjects writes count objects under prefix, whose contents are
// their own refs, and returns their sorted refs.
func PopulateTestObjects(t *testing.T, s *s3tools.Session, prefix string, count int) ([]string, map[string][]byte) {
	kv := make(map[string][]byte)
	for i := 0; i < count; i++ {
		ref := fmt.Sprintf("%s%020d", prefix, rand.Int())
		value := []byte(ref)
		kv[ref] = value

		err := s.PutBytes(context.Background(), ref, value)
		if err != nil {
			t.Errorf("PutBytes(%s) error = %v", ref, err)
		}
	}
	sortedRefs := make([]string, 0, len(kv))
	for ref := range kv {
		sortedRefs = append(sortedRefs, ref)
	}
	sort.Strings(sortedRefs)

	return sortedRefs, kv
}

// TestSession exercises put, get and delete of objects under prefix, which
// may be a bare key prefix or a fully-qualified one.
func TestSession(t *testing.T, s *s3tools.Session, prefix string) {
	sortedRefs, kv := PopulateTestObjects(t, s, prefix, NumTestObjects)

	for ref, value := range kv {
		checkExists(t, s, ref, value)
	}

	// Delete the first half, in sorted order
	for i := 0; i < (len(sortedRefs) / 2); i++ {
		err := s.Delete(context.Background(), sortedRefs[i])
		if err != nil {
			t.Errorf("Delete(%s) error = %v", sortedRefs[i], err)
		}
	}

	for i := 0; i < len(sortedRefs); i++ {
		if i < (len(sortedRefs) / 2) {
			checkNotExists(t, s, sortedRefs[i])
		} else {
			checkExists(t, s, sortedRefs[i], []byte(sortedRefs[i]))
		}
	}
}

// TestExpand checks that listing a fully-qualified prefix returns exactly
// the objects under it. bucketRef has the form scheme://bucket/.
func TestExpand(t *testing.T, s *s3tools.Session, bucketRef string) {
	if !strings.HasSuffix(bucketRef, "/") {
		t.Fatalf("bucketRef %s must end with /", bucketRef)
	}
	expected, _ := PopulateTestObjects(t, s, bucketRef+"expand/", NumTestObjects/4)
	PopulateTestObjects(t, s, bucketRef+"other/", NumTestObjects/4)

	refs, err := s.Expand(context.Background(), bucketRef+"expand/")
	if err != nil {
		t.Fatalf("Expand(%s) error = %v", bucketRef+"expand/", err)
	}
	sort.Strings(refs)
	if len(refs) != len(expected) {
		t.Fatalf("Expand(%s) len(refs) %d != expected %d", bucketRef+"expand/", len(refs), len(expected))
	}
	for i, ref := range refs {
		if ref != expected[i] {
			t.Errorf("ref %s != expected %s", ref, expected[i])
		}
	}
}
