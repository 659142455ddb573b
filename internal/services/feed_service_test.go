package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guestlens/server/internal/models"
)

// fakeMediaRepo serves ListPage from an in-memory slice ordered newest first,
// so pagination behaves like the real keyset query.
type fakeMediaRepo struct {
	mu      sync.Mutex
	items   []*models.MediaItem
	err     error
	calls   []int
	release chan struct{} // when set, ListPage blocks until closed
	waiting chan struct{}
}

func newFakeMediaRepo(count int) *fakeMediaRepo {
	base := time.Date(2026, 6, 14, 20, 0, 0, 0, time.UTC)
	items := make([]*models.MediaItem, count)
	for i := 0; i < count; i++ {
		items[i] = &models.MediaItem{
			ID:         fmt.Sprintf("item-%04d", count-i),
			GalleryID:  "gal-1",
			Type:       models.MediaImage,
			UploadedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return &fakeMediaRepo{items: items}
}

func (r *fakeMediaRepo) ListPage(ctx context.Context, galleryID string, cursor models.Cursor, limit int) ([]*models.MediaItem, error) {
	r.mu.Lock()
	r.calls = append(r.calls, limit)
	err := r.err
	release := r.release
	waiting := r.waiting
	r.mu.Unlock()

	if release != nil {
		if waiting != nil {
			close(waiting)
		}
		<-release
	}
	if err != nil {
		return nil, err
	}

	start := 0
	if !cursor.IsZero() {
		for i, item := range r.items {
			if item.UploadedAt.Before(cursor.UploadedAt) ||
				(item.UploadedAt.Equal(cursor.UploadedAt) && item.ID < cursor.ID) {
				start = i
				break
			}
			start = len(r.items)
		}
	}

	end := start + limit
	if end > len(r.items) {
		end = len(r.items)
	}
	page := make([]*models.MediaItem, end-start)
	copy(page, r.items[start:end])
	return page, nil
}

func (r *fakeMediaRepo) setErr(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

func (r *fakeMediaRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *fakeMediaRepo) GetByID(ctx context.Context, id string) (*models.MediaItem, error) {
	return nil, nil
}

func (r *fakeMediaRepo) GetByHash(ctx context.Context, galleryID, hash string) (*models.MediaItem, error) {
	return nil, nil
}

func (r *fakeMediaRepo) GetCount(ctx context.Context, galleryID string) (int, error) {
	return len(r.items), nil
}

func (r *fakeMediaRepo) ExistsByPath(ctx context.Context, storedPath string) (bool, error) {
	return false, nil
}

func (r *fakeMediaRepo) Add(ctx context.Context, item *models.MediaItem) error { return nil }

func (r *fakeMediaRepo) UpdateTags(ctx context.Context, id string, tags []models.MediaTag) error {
	return nil
}

func (r *fakeMediaRepo) Delete(ctx context.Context, id string) (bool, error) { return false, nil }

func TestFeedServicePage(t *testing.T) {
	ctx := context.Background()

	t.Run("full page reports more data", func(t *testing.T) {
		repo := newFakeMediaRepo(300)
		svc := NewFeedService(repo, nil)

		page, err := svc.Page(ctx, "gal-1", models.Cursor{}, InitialPageSize)

		require.NoError(t, err)
		assert.Len(t, page.Items, 200)
		assert.True(t, page.HasMore)
		assert.Equal(t, page.Items[199].ID, page.NextCursor.ID)
	})

	t.Run("short page still reports more data", func(t *testing.T) {
		repo := newFakeMediaRepo(3)
		svc := NewFeedService(repo, nil)

		page, err := svc.Page(ctx, "gal-1", models.Cursor{}, InitialPageSize)

		require.NoError(t, err)
		assert.Len(t, page.Items, 3)
		assert.True(t, page.HasMore)
	})

	t.Run("empty page reports no more data", func(t *testing.T) {
		repo := newFakeMediaRepo(0)
		svc := NewFeedService(repo, nil)

		page, err := svc.Page(ctx, "gal-1", models.Cursor{}, InitialPageSize)

		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasMore)
	})
}

func TestFeedSessionLoadInitial(t *testing.T) {
	ctx := context.Background()

	t.Run("loads first page with the initial limit", func(t *testing.T) {
		repo := newFakeMediaRepo(500)
		session := NewFeedService(repo, nil).NewSession("gal-1")

		items, err := session.LoadInitial(ctx)

		require.NoError(t, err)
		assert.Len(t, items, InitialPageSize)
		assert.Equal(t, []int{InitialPageSize}, repo.calls)
		assert.True(t, session.HasMore())
		assert.Equal(t, items[len(items)-1].ID, session.Cursor().ID)
	})

	t.Run("empty gallery yields no items and no more flag", func(t *testing.T) {
		repo := newFakeMediaRepo(0)
		session := NewFeedService(repo, nil).NewSession("gal-1")

		items, err := session.LoadInitial(ctx)

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.False(t, session.HasMore())
	})
}

func TestFeedSessionLoadMore(t *testing.T) {
	ctx := context.Background()

	t.Run("appends the next page with the continuation limit", func(t *testing.T) {
		repo := newFakeMediaRepo(250)
		session := NewFeedService(repo, nil).NewSession("gal-1")

		_, err := session.LoadInitial(ctx)
		require.NoError(t, err)

		items, err := session.LoadMore(ctx)

		require.NoError(t, err)
		assert.Len(t, items, 250)
		assert.Equal(t, []int{InitialPageSize, MorePageSize}, repo.calls)
		assert.Equal(t, items[len(items)-1].ID, session.Cursor().ID)
	})

	t.Run("does not repeat items across pages", func(t *testing.T) {
		repo := newFakeMediaRepo(350)
		session := NewFeedService(repo, nil).NewSession("gal-1")

		_, err := session.LoadInitial(ctx)
		require.NoError(t, err)
		items, err := session.LoadMore(ctx)
		require.NoError(t, err)

		seen := make(map[string]bool, len(items))
		for _, item := range items {
			assert.False(t, seen[item.ID], "duplicate item %s", item.ID)
			seen[item.ID] = true
		}
		assert.Len(t, items, 300)
	})

	t.Run("empty continuation permanently exhausts the feed", func(t *testing.T) {
		repo := newFakeMediaRepo(InitialPageSize)
		session := NewFeedService(repo, nil).NewSession("gal-1")

		_, err := session.LoadInitial(ctx)
		require.NoError(t, err)
		assert.True(t, session.HasMore())

		items, err := session.LoadMore(ctx)
		require.NoError(t, err)
		assert.Len(t, items, InitialPageSize)
		assert.False(t, session.HasMore())

		// Further calls are no-ops and never hit the repository again
		before := repo.callCount()
		items, err = session.LoadMore(ctx)
		require.NoError(t, err)
		assert.Len(t, items, InitialPageSize)
		assert.Equal(t, before, repo.callCount())
	})

	t.Run("errors surface without exhausting the feed", func(t *testing.T) {
		repo := newFakeMediaRepo(250)
		session := NewFeedService(repo, nil).NewSession("gal-1")

		_, err := session.LoadInitial(ctx)
		require.NoError(t, err)

		boom := errors.New("db down")
		repo.setErr(boom)

		items, err := session.LoadMore(ctx)
		assert.ErrorIs(t, err, boom)
		assert.Len(t, items, InitialPageSize)
		assert.True(t, session.HasMore())

		// Retry after recovery succeeds
		repo.setErr(nil)
		items, err = session.LoadMore(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 250)
	})

	t.Run("concurrent call while loading is a no-op", func(t *testing.T) {
		repo := newFakeMediaRepo(250)
		session := NewFeedService(repo, nil).NewSession("gal-1")

		_, err := session.LoadInitial(ctx)
		require.NoError(t, err)

		repo.mu.Lock()
		repo.release = make(chan struct{})
		repo.waiting = make(chan struct{})
		repo.mu.Unlock()

		done := make(chan struct{})
		go func() {
			session.LoadMore(ctx)
			close(done)
		}()
		<-repo.waiting

		// Second call returns immediately with current items
		items, err := session.LoadMore(ctx)
		require.NoError(t, err)
		assert.Len(t, items, InitialPageSize)

		close(repo.release)
		<-done

		assert.Len(t, session.Items(), 250)
		assert.Equal(t, 2, repo.callCount())
	})
}

func TestFeedSessionRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("resets state and reloads the first page", func(t *testing.T) {
		repo := newFakeMediaRepo(InitialPageSize)
		session := NewFeedService(repo, nil).NewSession("gal-1")

		_, err := session.LoadInitial(ctx)
		require.NoError(t, err)
		_, err = session.LoadMore(ctx)
		require.NoError(t, err)
		assert.False(t, session.HasMore())

		items, err := session.Refresh(ctx)

		require.NoError(t, err)
		assert.Len(t, items, InitialPageSize)
		assert.True(t, session.HasMore())
	})
}
