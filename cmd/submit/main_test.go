package main

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"texttovideo/config"
	"texttovideo/devserver"
	"texttovideo/form"

	"github.com/gin-gonic/gin"
)

func TestFill(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.txt")
	if err := os.WriteFile(path, []byte("Text from a file upload"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name     string
		opts     options
		wantText string
		wantFile bool
		wantErr  bool
	}{
		{"text", options{text: "Typed text here"}, "Typed text here", false, false},
		{"file", options{file: path}, "Text from a file upload", true, false},
		{"missing file", options{file: filepath.Join(dir, "nope.txt")}, "", false, true},
		{"two sources", options{text: "a", url: "https://example.com"}, "", false, true},
		{"nothing", options{}, "", false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := form.New(100)
			err := fill(context.Background(), f, c.opts)
			if (err != nil) != c.wantErr {
				t.Fatalf("fill err = %v; wantErr %v", err, c.wantErr)
			}
			if err != nil {
				return
			}
			if f.Text != c.wantText || (f.File != nil) != c.wantFile {
				t.Fatalf("form = %q, file %v", f.Text, f.File)
			}
		})
	}
}

func TestRunWithoutWait(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(devserver.NewServer(nil).NewRouter())
	defer srv.Close()

	cfg := config.Config{MaxChars: 100}
	opts := options{apiURL: srv.URL, text: "Enough text to make a job.", wait: false}
	if err := run(context.Background(), cfg, opts); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunRejectsShortText(t *testing.T) {
	cfg := config.Config{MaxChars: 100}
	err := run(context.Background(), cfg, options{apiURL: "http://127.0.0.1:1", text: "short"})
	if err == nil || err.Error() != "Text must be at least 10 characters long." {
		t.Fatalf("run err = %v", err)
	}
}
