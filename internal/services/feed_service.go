package services

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/observability"
	"github.com/guestlens/server/internal/repository"
)

const (
	// InitialPageSize is the number of items fetched on first load
	InitialPageSize = 200
	// MorePageSize is the number of items fetched per continuation
	MorePageSize = 100
	// PrefetchCount is how many leading items get their thumbnails warmed
	PrefetchCount = 25
)

// FeedPage is one window of a gallery's media feed
type FeedPage struct {
	Items      []*models.MediaItem
	NextCursor models.Cursor
	HasMore    bool
}

// Prefetcher warms caches for feed items ahead of client requests
type Prefetcher interface {
	Warm(items []*models.MediaItem)
}

// FeedService fetches bounded, time-ordered windows of gallery media
type FeedService struct {
	repo       repository.MediaRepo
	prefetcher Prefetcher
}

// NewFeedService creates a new FeedService
func NewFeedService(repo repository.MediaRepo, prefetcher Prefetcher) *FeedService {
	return &FeedService{repo: repo, prefetcher: prefetcher}
}

// Page fetches one feed window. A zero cursor returns the newest items.
// HasMore is false only when the query returned nothing; a short page still
// reports true because older rows may exist behind the cursor.
func (s *FeedService) Page(ctx context.Context, galleryID string, cursor models.Cursor, limit int) (*FeedPage, error) {
	items, err := s.repo.ListPage(ctx, galleryID, cursor, limit)
	if err != nil {
		return nil, err
	}

	page := &FeedPage{Items: items}
	if len(items) > 0 {
		page.NextCursor = models.CursorFor(items[len(items)-1])
		page.HasMore = true
	}
	return page, nil
}

// Count returns the total number of items in a gallery's feed
func (s *FeedService) Count(ctx context.Context, galleryID string) (int, error) {
	return s.repo.GetCount(ctx, galleryID)
}

// NewSession creates a stateful feed session for one gallery
func (s *FeedService) NewSession(galleryID string) *FeedSession {
	return &FeedSession{
		svc:       s,
		galleryID: galleryID,
		hasMore:   true,
	}
}

// FeedSession tracks one consumer's position in a gallery feed: the loaded
// items, the continuation cursor, and whether older data may remain. All
// state is owned by the session and mutated only by it.
type FeedSession struct {
	svc       *FeedService
	galleryID string

	mu          sync.Mutex
	items       []*models.MediaItem
	cursor      models.Cursor
	hasMore     bool
	loadingMore bool
}

// LoadInitial fetches the first page and records the continuation cursor.
// The first PrefetchCount items get their thumbnails warmed in the
// background, best effort.
func (f *FeedSession) LoadInitial(ctx context.Context) ([]*models.MediaItem, error) {
	page, err := f.svc.Page(ctx, f.galleryID, models.Cursor{}, InitialPageSize)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.items = page.Items
	f.cursor = page.NextCursor
	f.hasMore = page.HasMore
	f.mu.Unlock()

	if f.svc.prefetcher != nil {
		n := len(page.Items)
		if n > PrefetchCount {
			n = PrefetchCount
		}
		go f.svc.prefetcher.Warm(page.Items[:n])
	}

	return page.Items, nil
}

// LoadMore fetches the next page after the recorded cursor and appends it.
// A call while a previous one is in flight is a no-op, as is any call after
// the feed has been exhausted. Returns the full item list.
func (f *FeedSession) LoadMore(ctx context.Context) ([]*models.MediaItem, error) {
	f.mu.Lock()
	if f.loadingMore || !f.hasMore {
		items := f.items
		f.mu.Unlock()
		return items, nil
	}
	f.loadingMore = true
	cursor := f.cursor
	f.mu.Unlock()

	page, err := f.svc.Page(ctx, f.galleryID, cursor, MorePageSize)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadingMore = false

	if err != nil {
		// Errors do not exhaust the feed; the caller may try again
		return f.items, err
	}

	if len(page.Items) == 0 {
		// Exhausted: stays false for the rest of this session
		f.hasMore = false
		return f.items, nil
	}

	f.items = append(f.items, page.Items...)
	f.cursor = page.NextCursor
	return f.items, nil
}

// Refresh clears all session state and reloads the first page
func (f *FeedSession) Refresh(ctx context.Context) ([]*models.MediaItem, error) {
	f.mu.Lock()
	f.items = nil
	f.cursor = models.Cursor{}
	f.hasMore = true
	f.loadingMore = false
	f.mu.Unlock()

	return f.LoadInitial(ctx)
}

// Items returns the currently loaded items
func (f *FeedSession) Items() []*models.MediaItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items
}

// HasMore reports whether older data may remain
func (f *FeedSession) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Cursor returns the current continuation cursor
func (f *FeedSession) Cursor() models.Cursor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor
}

// ThumbnailWarmer reads small thumbnails into the OS page cache so the first
// screenful of a gallery serves from memory. Fire and forget: failures are
// logged at debug and never retried.
type ThumbnailWarmer struct {
	storage *MediaStorageService
}

// NewThumbnailWarmer creates a ThumbnailWarmer backed by the given storage
func NewThumbnailWarmer(storage *MediaStorageService) *ThumbnailWarmer {
	return &ThumbnailWarmer{storage: storage}
}

// Warm reads each item's small thumbnail, falling back to the original blob
func (w *ThumbnailWarmer) Warm(items []*models.MediaItem) {
	for _, item := range items {
		path := item.StoredPath
		if item.ThumbSmall != nil && *item.ThumbSmall != "" {
			path = *item.ThumbSmall
		}
		if path == "" {
			continue
		}

		fullPath, err := w.storage.GetFullPath(path)
		if err != nil {
			continue
		}

		file, err := os.Open(fullPath)
		if err != nil {
			observability.Debugf("prefetch skip %s: %v", path, err)
			continue
		}
		io.Copy(io.Discard, file)
		file.Close()
	}
}
