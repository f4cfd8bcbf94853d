package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"texttovideo/config"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type fakeStore struct {
	objects   map[string][]byte
	types     map[string]string
	existsErr error
	putErr    error
	puts      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStore) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.puts++
	f.objects[bucket+"/"+key] = data
	f.types[bucket+"/"+key] = contentType
	return nil
}

func (f *fakeStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.objects[bucket+"/"+key]
	return ok, nil
}

func writeVideo(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "video_abc.mp4")
	if err := os.WriteFile(p, []byte("mp4"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestArchiveUploadsOnce(t *testing.T) {
	store := newFakeStore()
	a := New(store, "videos", "/jobs/")
	p := writeVideo(t)

	loc, err := a.Archive(context.Background(), "abc", p)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if loc != "s3://videos/jobs/abc/video_abc.mp4" {
		t.Fatalf("location = %q", loc)
	}
	if got := string(store.objects["videos/jobs/abc/video_abc.mp4"]); got != "mp4" {
		t.Fatalf("stored %q", got)
	}
	if store.types["videos/jobs/abc/video_abc.mp4"] != "video/mp4" {
		t.Fatalf("content type = %q", store.types["videos/jobs/abc/video_abc.mp4"])
	}

	if _, err := a.Archive(context.Background(), "abc", p); err != nil {
		t.Fatalf("second Archive: %v", err)
	}
	if store.puts != 1 {
		t.Fatalf("puts = %d; want 1", store.puts)
	}
}

func TestArchiveKeyWithoutPrefix(t *testing.T) {
	a := New(newFakeStore(), "videos", "")
	if got := a.Key("abc", "/tmp/out/video.mp4"); got != "abc/video.mp4" {
		t.Fatalf("Key = %q", got)
	}
}

func TestArchiveErrors(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*fakeStore)
		path  func(*testing.T) string
	}{
		{"exists check fails", func(s *fakeStore) { s.existsErr = errors.New("denied") }, writeVideo},
		{"upload fails", func(s *fakeStore) { s.putErr = errors.New("timeout") }, writeVideo},
		{"missing file", func(*fakeStore) {}, func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.mp4") }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := newFakeStore()
			c.setup(store)
			if _, err := New(store, "b", "p").Archive(context.Background(), "abc", c.path(t)); err == nil {
				t.Fatal("Archive succeeded; want error")
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(&smithy.GenericAPIError{Code: "NotFound"}) {
		t.Fatal("NotFound API error should be not found")
	}
	if isNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}) {
		t.Fatal("AccessDenied should not be not found")
	}
	if !isNotFound(fmt.Errorf("head: %w", &s3types.NotFound{})) {
		t.Fatal("wrapped s3 NotFound should be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatal("plain error should not be not found")
	}
}

func TestFromConfigWithoutBucket(t *testing.T) {
	a, err := FromConfig(context.Background(), config.Config{})
	if err != nil || a != nil {
		t.Fatalf("FromConfig = %v, %v; want nil, nil", a, err)
	}
}
