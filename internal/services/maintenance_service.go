package services

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/guestlens/server/internal/observability"
	"github.com/guestlens/server/internal/repository"
)

// orphanGracePeriod keeps freshly written blobs out of the orphan scan so an
// upload in flight is never reaped between the file write and the DB insert
const orphanGracePeriod = time.Hour

// MaintenanceStatus reports the state of background maintenance
type MaintenanceStatus struct {
	Running         bool      `json:"running"`
	LastRun         time.Time `json:"lastRun,omitempty"`
	LastRunDuration string    `json:"lastRunDuration,omitempty"`
	OrphansRemoved  int       `json:"orphansRemoved"`
	SessionsSwept   int64     `json:"sessionsSwept"`
	Errors          []string  `json:"errors,omitempty"`
}

// MaintenanceService runs periodic housekeeping: expired session cleanup and
// removal of orphaned blobs that no media item or story references
type MaintenanceService struct {
	mediaRepo   repository.MediaRepo
	storyRepo   repository.StoryRepo
	sessionRepo repository.SessionRepo
	storage     *MediaStorageService

	mu       sync.RWMutex
	running  bool
	status   MaintenanceStatus
	stopChan chan struct{}
	ticker   *time.Ticker
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(
	mediaRepo repository.MediaRepo,
	storyRepo repository.StoryRepo,
	sessionRepo repository.SessionRepo,
	storage *MediaStorageService,
) *MaintenanceService {
	return &MaintenanceService{
		mediaRepo:   mediaRepo,
		storyRepo:   storyRepo,
		sessionRepo: sessionRepo,
		storage:     storage,
	}
}

// Start begins the hourly maintenance loop
func (s *MaintenanceService) Start() {
	s.mu.Lock()
	if s.ticker != nil {
		s.mu.Unlock()
		return
	}
	s.stopChan = make(chan struct{})
	s.ticker = time.NewTicker(1 * time.Hour)
	s.mu.Unlock()

	observability.Infof("maintenance service started (runs every hour)")

	go s.run()

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.run()
			case <-s.stopChan:
				s.mu.Lock()
				s.ticker.Stop()
				s.ticker = nil
				s.mu.Unlock()
				return
			}
		}
	}()
}

// Stop halts the maintenance loop
func (s *MaintenanceService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker == nil {
		return
	}
	close(s.stopChan)
}

// GetStatus returns the current maintenance status
func (s *MaintenanceService) GetStatus() MaintenanceStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// RunNow triggers an immediate maintenance run
func (s *MaintenanceService) RunNow() {
	go s.run()
}

func (s *MaintenanceService) run() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.status.Running = true
	s.status.Errors = nil
	s.mu.Unlock()

	start := time.Now()
	ctx := context.Background()

	sessionsSwept, sessionErr := s.sessionRepo.DeleteExpired(ctx, time.Now().UTC())
	orphansRemoved, orphanErrors := s.removeOrphanBlobs(ctx)

	duration := time.Since(start)

	s.mu.Lock()
	s.running = false
	s.status.Running = false
	s.status.LastRun = start
	s.status.LastRunDuration = duration.Round(time.Millisecond).String()
	s.status.OrphansRemoved = orphansRemoved
	s.status.SessionsSwept = sessionsSwept
	if sessionErr != nil {
		s.status.Errors = append(s.status.Errors, "session sweep: "+sessionErr.Error())
	}
	s.status.Errors = append(s.status.Errors, orphanErrors...)
	s.mu.Unlock()

	if sessionsSwept > 0 {
		observability.Infof("maintenance: swept %d expired sessions", sessionsSwept)
	}
	if orphansRemoved > 0 {
		observability.Infof("maintenance: removed %d orphaned blobs", orphansRemoved)
	}
}

// removeOrphanBlobs walks the upload directories and deletes blobs that no
// media item or story references. Files younger than the grace period are
// skipped; thumbnails are handled through their parent blob's lifecycle.
func (s *MaintenanceService) removeOrphanBlobs(ctx context.Context) (int, []string) {
	var errors []string
	removed := 0
	cutoff := time.Now().Add(-orphanGracePeriod)

	root := filepath.Join(s.storage.BasePath(), "galleries")
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".thumbs" {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}

		rel, err := filepath.Rel(s.storage.BasePath(), path)
		if err != nil {
			return nil
		}
		storedPath := strings.ReplaceAll(rel, string(filepath.Separator), "/")

		inMedia, err := s.mediaRepo.ExistsByPath(ctx, storedPath)
		if err != nil {
			errors = append(errors, "orphan check: "+err.Error())
			return nil
		}
		if inMedia {
			return nil
		}

		inStories, err := s.storyRepo.ExistsByPath(ctx, storedPath)
		if err != nil {
			errors = append(errors, "orphan check: "+err.Error())
			return nil
		}
		if inStories {
			return nil
		}

		if s.storage.Delete(storedPath) {
			removed++
		}
		return nil
	})
	if err != nil {
		errors = append(errors, "orphan walk: "+err.Error())
	}

	return removed, errors
}
