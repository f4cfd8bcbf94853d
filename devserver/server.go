// Package devserver is a local stand-in for the text-to-video backend. It
// speaks the same HTTP contract and walks each job through a fixed set of
// stages, one per status request, so the client can be run end to end
// without the real service.
package devserver

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"texttovideo/config"

	"github.com/gin-gonic/gin"
)

// placeholderVideo is served when no video file is configured
var placeholderVideo = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")

// Server holds the simulated backend state
type Server struct {
	// Debug adds gin's request logger to the router
	Debug bool

	store *Store
	video []byte
}

// NewServer creates a backend that serves video for every completed job.
// A nil video uses a tiny placeholder.
func NewServer(video []byte) *Server {
	if len(video) == 0 {
		video = placeholderVideo
	}
	return &Server{store: NewStore(), video: video}
}

// Store exposes the job store
func (s *Server) Store() *Store {
	return s.store
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if s.Debug {
		r.Use(gin.Logger())
	}
	r.MaxMultipartMemory = config.MaxUploadBytes

	r.POST(config.ProcessTextPath, s.handleProcessText)
	r.GET(config.StatusPath+":job_id", s.handleStatus)
	r.GET(config.PreviewPath+":filename", s.handlePreview)
	r.GET(config.DownloadPath+":filename", s.handleDownload)
	r.GET("/health", handleHealth)
	return r
}

// handleProcessText creates a job from the multipart form
func (s *Server) handleProcessText(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxUploadBytes)
	if err := c.Request.ParseMultipartForm(config.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large. Maximum size is 16MB."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := strings.TrimSpace(c.PostForm(config.TextField))

	if fileText, ok := readTextFile(c); ok && fileText != "" {
		text = strings.TrimSpace(fileText)
	}

	if len([]rune(text)) < config.MinTextLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide text with at least 10 characters"})
		return
	}

	id := s.store.Create(text)
	log.Printf("📥 Job %s created: %d chunks, ~%.0fs narration", id, s.store.Chunks(id), EstimateDuration(text))

	c.JSON(http.StatusOK, gin.H{"job_id": id, "status": "started"})
}

// handleStatus returns the job status, advancing the simulation one stage
func (s *Server) handleStatus(c *gin.Context) {
	status, ok := s.store.Advance(c.Param("job_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handlePreview(c *gin.Context) {
	s.serveVideo(c, false)
}

func (s *Server) handleDownload(c *gin.Context) {
	s.serveVideo(c, true)
}

func (s *Server) serveVideo(c *gin.Context, attachment bool) {
	name := c.Param("filename")
	if !s.store.HasVideo(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video file not found"})
		return
	}
	if attachment {
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	}
	c.Data(http.StatusOK, "video/mp4", s.video)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readTextFile returns the uploaded file's content when it is a .txt or .md file
func readTextFile(c *gin.Context) (string, bool) {
	fh, err := c.FormFile(config.FileField)
	if err != nil || fh.Filename == "" {
		return "", false
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".txt" && ext != ".md" {
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		return "", false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", false
	}
	return string(data), true
}
