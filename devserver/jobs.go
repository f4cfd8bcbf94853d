package devserver

import (
	"fmt"
	"strings"
	"sync"

	"texttovideo/types"

	"github.com/google/uuid"
)

// FailMarker in the submitted text makes the simulated job end in an error
const FailMarker = "#fail"

// stage is one step of the simulated pipeline
type stage struct {
	progress float64
	message  string
}

var pipeline = []stage{
	{0, "Starting text processing..."},
	{20, "Chunking text..."},
	{40, "Converting text to speech..."},
	{70, "Creating video..."},
}

type job struct {
	id     string
	text   string
	chunks int
	stage  int
	status types.JobStatus
}

// Store keeps simulated jobs in memory. Each status read advances a job by one stage.
type Store struct {
	mu   sync.Mutex
	jobs map[string]*job
}

// NewStore creates an empty job store
func NewStore() *Store {
	return &Store{jobs: make(map[string]*job)}
}

// Create registers a new job for text and returns its id
func (s *Store) Create(text string) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[id] = &job{
		id:     id,
		text:   text,
		chunks: len(ChunkText(text, MaxChunkLength)),
		status: types.JobStatus{
			Status:   types.StateProcessing,
			Progress: pipeline[0].progress,
			Message:  pipeline[0].message,
		},
	}
	return id
}

// Advance moves the job one stage forward and returns its new status
func (s *Store) Advance(id string) (types.JobStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return types.JobStatus{}, false
	}
	if j.status.Status.Terminal() {
		return j.status, true
	}

	j.stage++
	switch {
	case j.stage < len(pipeline):
		j.status.Progress = pipeline[j.stage].progress
		j.status.Message = pipeline[j.stage].message
	case strings.Contains(j.text, FailMarker):
		j.status = types.JobStatus{
			Status:  types.StateError,
			Message: "Error: Video generation failed",
		}
	default:
		j.status = types.JobStatus{
			Status:    types.StateCompleted,
			Progress:  100,
			Message:   "Video created successfully!",
			VideoPath: VideoFileName(j.id),
		}
	}

	return j.status, true
}

// HasVideo reports whether name belongs to a completed job
func (s *Store) HasVideo(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if j.status.Status == types.StateCompleted && j.status.VideoPath == name {
			return true
		}
	}
	return false
}

// Chunks returns how many narration chunks the job's text was split into
func (s *Store) Chunks(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j, ok := s.jobs[id]; ok {
		return j.chunks
	}
	return 0
}

// VideoFileName is the video path reported for a completed job
func VideoFileName(jobID string) string {
	return fmt.Sprintf("video_%s.mp4", jobID)
}
