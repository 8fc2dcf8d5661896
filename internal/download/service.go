package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/podshelf/internal/model"
	"github.com/ytget/podshelf/internal/platform"
)

// PartialSuffix marks files that are still being downloaded
const PartialSuffix = ".partial"

// DefaultProgressInterval throttles progress callbacks
const DefaultProgressInterval = 500 * time.Millisecond

var (
	// ErrTaskExists is returned when an unfinished task for the episode exists
	ErrTaskExists = errors.New("task already exists")

	// ErrTaskNotFound is returned for unknown task ids
	ErrTaskNotFound = errors.New("task not found")
)

type job struct {
	task   *model.DownloadTask
	url    string
	dest   string
	seq    int64
	cancel context.CancelFunc
}

// Service handles download operations
type Service struct {
	jobs             map[string]*job
	tasksMutex       sync.RWMutex
	maxParallel      int
	activeCount      int
	downloadDir      string
	seq              int64
	client           *http.Client
	progressInterval time.Duration
	onUpdate         func(*model.DownloadTask) // callback for UI updates
	running          sync.WaitGroup
}

// NewService creates a new download service
func NewService(downloadDir string, maxParallel int) *Service {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Service{
		jobs:             make(map[string]*job),
		maxParallel:      maxParallel,
		downloadDir:      downloadDir,
		client:           &http.Client{},
		progressInterval: DefaultProgressInterval,
	}
}

// SetHTTPClient replaces the client used for enclosure requests
func (s *Service) SetHTTPClient(c *http.Client) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.client = c
}

// SetUpdateCallback sets the callback function for task updates. It is
// called from worker goroutines with a snapshot of the task.
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Service) SetMaxParallelDownloads(max int) {
	if max < 1 {
		max = 1
	}
	s.tasksMutex.Lock()
	s.maxParallel = max
	s.scheduleLocked()
	s.tasksMutex.Unlock()
}

// SetDownloadDirectory sets the directory used for podcasts without one
func (s *Service) SetDownloadDirectory(dir string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.downloadDir = dir
}

// AddTask queues the enclosure of e for download
func (s *Service) AddTask(e *model.Episode) (*model.DownloadTask, error) {
	if e == nil || e.URL == "" {
		return nil, fmt.Errorf("episode has no enclosure url")
	}

	s.tasksMutex.Lock()
	for _, j := range s.jobs {
		if j.task.EpisodeURL == e.URL && !j.task.Status.IsFinished() {
			s.tasksMutex.Unlock()
			return nil, fmt.Errorf("%w for URL: %s", ErrTaskExists, e.URL)
		}
	}

	dir := s.downloadDir
	if e.Podcast != nil && e.Podcast.DownloadDir != "" {
		dir = e.Podcast.DownloadDir
	}
	dest := filepath.Join(dir, Filename(e))

	s.seq++
	j := &job{
		url:  e.URL,
		dest: dest,
		seq:  s.seq,
		task: &model.DownloadTask{
			ID:         uuid.NewString(),
			EpisodeURL: e.URL,
			Status:     model.TaskStatusPending,
			ETASec:     -1,
			OutputPath: dest,
			StartedAt:  time.Now(),
			Title:      e.Title,
			TotalBytes: e.FileSize,
		},
	}
	s.jobs[j.task.ID] = j
	snapshot := *j.task
	s.scheduleLocked()
	s.tasksMutex.Unlock()

	log.Debug().Str("task", snapshot.ID).Str("url", e.URL).Str("dest", dest).Msg("download queued")
	s.notifyUpdate(&snapshot)
	return &snapshot, nil
}

// GetTask returns a snapshot of a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	j, exists := s.jobs[id]
	if !exists {
		return nil, false
	}
	snapshot := *j.task
	return &snapshot, true
}

// GetAllTasks returns snapshots of all tasks in the order they were added
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	jobs := s.sortedJobsLocked()
	tasks := make([]*model.DownloadTask, 0, len(jobs))
	for _, j := range jobs {
		snapshot := *j.task
		tasks = append(tasks, &snapshot)
	}
	return tasks
}

// TaskForEpisode returns the most recent task for an episode URL
func (s *Service) TaskForEpisode(episodeURL string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	var latest *job
	for _, j := range s.jobs {
		if j.task.EpisodeURL == episodeURL && (latest == nil || j.seq > latest.seq) {
			latest = j
		}
	}
	if latest == nil {
		return nil, false
	}
	snapshot := *latest.task
	return &snapshot, true
}

// StopTask stops a task and discards its partial file
func (s *Service) StopTask(id string) error {
	s.tasksMutex.Lock()
	j, exists := s.jobs[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	switch {
	case j.task.Status.IsActive() && j.task.Status != model.TaskStatusStopping:
		// The actual stopping will be handled in the task goroutine
		j.task.Status = model.TaskStatusStopping
		j.cancel()
	case j.task.Status == model.TaskStatusPending || j.task.Status == model.TaskStatusPaused:
		j.task.Status = model.TaskStatusStopped
		j.task.FinishedAt = time.Now()
		defer removePartial(j.dest)
	default:
		status := j.task.Status
		s.tasksMutex.Unlock()
		return fmt.Errorf("task is not active: %s", status)
	}
	snapshot := *j.task
	s.tasksMutex.Unlock()

	s.notifyUpdate(&snapshot)
	return nil
}

// PauseTask stops a task keeping its partial file for ResumeTask
func (s *Service) PauseTask(id string) error {
	s.tasksMutex.Lock()
	j, exists := s.jobs[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	switch j.task.Status {
	case model.TaskStatusStarting, model.TaskStatusDownloading:
		j.task.Status = model.TaskStatusPaused
		j.cancel()
	case model.TaskStatusPending:
		j.task.Status = model.TaskStatusPaused
	default:
		status := j.task.Status
		s.tasksMutex.Unlock()
		return fmt.Errorf("task cannot be paused: %s", status)
	}
	snapshot := *j.task
	s.tasksMutex.Unlock()

	s.notifyUpdate(&snapshot)
	return nil
}

// ResumeTask requeues a paused, stopped or failed task
func (s *Service) ResumeTask(id string) error {
	s.tasksMutex.Lock()
	j, exists := s.jobs[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	switch j.task.Status {
	case model.TaskStatusPaused, model.TaskStatusStopped, model.TaskStatusError:
	default:
		status := j.task.Status
		s.tasksMutex.Unlock()
		return fmt.Errorf("task cannot be resumed: %s", status)
	}
	for _, other := range s.jobs {
		if other != j && other.task.EpisodeURL == j.task.EpisodeURL && !other.task.Status.IsFinished() {
			s.tasksMutex.Unlock()
			return fmt.Errorf("%w for URL: %s", ErrTaskExists, j.task.EpisodeURL)
		}
	}

	s.seq++
	j.seq = s.seq
	j.task.Status = model.TaskStatusPending
	j.task.LastError = ""
	j.task.FinishedAt = time.Time{}
	snapshot := *j.task
	s.scheduleLocked()
	s.tasksMutex.Unlock()

	s.notifyUpdate(&snapshot)
	return nil
}

// RemoveTask forgets a task, stopping it first when it is running
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	j, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if j.cancel != nil {
		j.task.Status = model.TaskStatusStopping
		j.cancel()
	}
	delete(s.jobs, id)
	return nil
}

// Wait blocks until no download goroutine is running
func (s *Service) Wait() {
	s.running.Wait()
}

// scheduleLocked starts pending tasks in FIFO order while there is capacity
func (s *Service) scheduleLocked() {
	pending := make([]*job, 0)
	for _, j := range s.sortedJobsLocked() {
		if j.task.Status == model.TaskStatusPending {
			pending = append(pending, j)
		}
	}

	for _, j := range pending {
		if s.activeCount >= s.maxParallel {
			return
		}
		s.activeCount++
		j.task.Status = model.TaskStatusStarting
		ctx, cancel := context.WithCancel(context.Background())
		j.cancel = cancel
		s.running.Add(1)
		go s.startTask(ctx, cancel, j)
	}
}

func (s *Service) sortedJobsLocked() []*job {
	jobs := make([]*job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].seq < jobs[b].seq })
	return jobs
}

// startTask runs one download and updates its final status
func (s *Service) startTask(ctx context.Context, cancel context.CancelFunc, j *job) {
	defer s.running.Done()
	defer cancel()

	s.tasksMutex.Lock()
	if j.task.Status == model.TaskStatusStarting {
		j.task.Status = model.TaskStatusDownloading
	}
	snapshot := *j.task
	client := s.client
	s.tasksMutex.Unlock()
	s.notifyUpdate(&snapshot)

	err := s.fetch(ctx, client, j)

	s.tasksMutex.Lock()
	s.activeCount--
	j.cancel = nil
	discard := false
	switch {
	case err == nil:
		j.task.Status = model.TaskStatusCompleted
		j.task.Progress = 1.0
		j.task.Percent = 100
		j.task.ETASec = -1
		j.task.FinishedAt = time.Now()
	case ctx.Err() != nil && j.task.Status == model.TaskStatusPaused:
	case ctx.Err() != nil:
		j.task.Status = model.TaskStatusStopped
		j.task.FinishedAt = time.Now()
		discard = true
	default:
		j.task.Status = model.TaskStatusError
		j.task.LastError = err.Error()
		j.task.FinishedAt = time.Now()
		log.Warn().Err(err).Str("task", j.task.ID).Str("url", j.url).Msg("download failed")
	}
	snapshot = *j.task
	s.scheduleLocked()
	s.tasksMutex.Unlock()

	if discard {
		removePartial(j.dest)
	}
	s.notifyUpdate(&snapshot)
}

// fetch downloads j.url into its partial file, resuming from an existing
// partial file when the server honours range requests
func (s *Service) fetch(ctx context.Context, client *http.Client, j *job) error {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(j.dest)); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	partial := j.dest + PartialSuffix
	var offset int64
	if info, err := os.Stat(partial); err == nil {
		offset = info.Size()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "podshelf/1.0")
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch enclosure: %w", err)
	}
	defer resp.Body.Close()

	flags := os.O_CREATE | os.O_WRONLY
	switch resp.StatusCode {
	case http.StatusOK:
		offset = 0
		flags |= os.O_TRUNC
	case http.StatusPartialContent:
		flags |= os.O_APPEND
	default:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	total := int64(0)
	if resp.ContentLength > 0 {
		total = offset + resp.ContentLength
	}

	f, err := os.OpenFile(partial, flags, 0o644)
	if err != nil {
		return fmt.Errorf("open partial file: %w", err)
	}

	pw := &progressWriter{s: s, j: j, received: offset, resumedAt: offset, total: total, started: time.Now()}
	_, copyErr := io.Copy(f, io.TeeReader(resp.Body, pw))
	closeErr := f.Close()
	pw.flush()
	if copyErr != nil {
		return fmt.Errorf("download %s: %w", j.url, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close partial file: %w", closeErr)
	}

	if err := os.Rename(partial, j.dest); err != nil {
		return fmt.Errorf("finalize download: %w", err)
	}
	return nil
}

// progressWriter counts received bytes and reports throttled progress
type progressWriter struct {
	s         *Service
	j         *job
	received  int64
	resumedAt int64
	total     int64
	started   time.Time
	reported  time.Time
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.received += int64(len(p))
	if time.Since(w.reported) >= w.s.progressInterval {
		w.flush()
	}
	return len(p), nil
}

func (w *progressWriter) flush() {
	w.reported = time.Now()

	var bps float64
	if elapsed := time.Since(w.started).Seconds(); elapsed > 0 {
		bps = float64(w.received-w.resumedAt) / elapsed
	}

	w.s.tasksMutex.Lock()
	t := w.j.task
	t.Received = w.received
	if w.total > 0 {
		t.TotalBytes = w.total
		t.Progress = float64(w.received) / float64(w.total)
		if t.Progress > 1 {
			t.Progress = 1
		}
		t.Percent = int(t.Progress * 100)
		if bps > 0 {
			t.ETASec = int(float64(w.total-w.received) / bps)
		}
	}
	if bps > 0 {
		t.Speed = humanize.IBytes(uint64(bps)) + "/s"
	}
	snapshot := *t
	w.s.tasksMutex.Unlock()

	w.s.notifyUpdate(&snapshot)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	s.tasksMutex.RUnlock()
	if callback != nil {
		callback(task)
	}
}

func removePartial(dest string) {
	if err := os.Remove(dest + PartialSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("path", dest).Msg("could not remove partial download")
	}
}
