package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guestlens/server/internal/models"
)

type fakeGalleryRepo struct {
	addErrs  []error
	addCalls int
	slugs    []string
}

func (r *fakeGalleryRepo) Add(ctx context.Context, g *models.Gallery) error {
	r.addCalls++
	r.slugs = append(r.slugs, g.Slug)
	if len(r.addErrs) > 0 {
		err := r.addErrs[0]
		r.addErrs = r.addErrs[1:]
		return err
	}
	return nil
}

func (r *fakeGalleryRepo) GetByID(ctx context.Context, id string) (*models.Gallery, error) {
	return nil, nil
}

func (r *fakeGalleryRepo) GetBySlug(ctx context.Context, slug string) (*models.Gallery, error) {
	return nil, nil
}

func (r *fakeGalleryRepo) GetBySecretToken(ctx context.Context, token string) (*models.Gallery, error) {
	return nil, nil
}

func (r *fakeGalleryRepo) Update(ctx context.Context, g *models.Gallery) error { return nil }

func (r *fakeGalleryRepo) Delete(ctx context.Context, id string) (bool, error) { return false, nil }

type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}}
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	return r.sessions[id], nil
}

func (r *fakeSessionRepo) Add(ctx context.Context, s *models.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) Touch(ctx context.Context, id string) error { return nil }

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok, nil
}

func (r *fakeSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func TestCreateGallerySlugRetry(t *testing.T) {
	ctx := context.Background()
	req := &models.CreateGalleryRequest{Name: "Sarah & Tom's Wedding", DeviceID: "host-device"}

	t.Run("regenerates the slug on a collision", func(t *testing.T) {
		repo := &fakeGalleryRepo{addErrs: []error{models.ErrGallerySlugExists}}
		svc := NewGalleryService(repo, &fakeMediaRepo{}, newFakeSessionRepo(), 72)

		gallery, session, err := svc.CreateGallery(ctx, req, "10.0.0.1", "test-agent")

		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, 2, repo.addCalls)
		assert.NotEqual(t, repo.slugs[0], repo.slugs[1])
		assert.Equal(t, repo.slugs[1], gallery.Slug)
	})

	t.Run("gives up after repeated collisions", func(t *testing.T) {
		repo := &fakeGalleryRepo{addErrs: []error{
			models.ErrGallerySlugExists,
			models.ErrGallerySlugExists,
			models.ErrGallerySlugExists,
		}}
		svc := NewGalleryService(repo, &fakeMediaRepo{}, newFakeSessionRepo(), 72)

		_, _, err := svc.CreateGallery(ctx, req, "", "")

		assert.ErrorIs(t, err, models.ErrGallerySlugExists)
		assert.Equal(t, 3, repo.addCalls)
	})

	t.Run("does not retry transient failures", func(t *testing.T) {
		boom := errors.New("db down")
		repo := &fakeGalleryRepo{addErrs: []error{boom}}
		svc := NewGalleryService(repo, &fakeMediaRepo{}, newFakeSessionRepo(), 72)

		_, _, err := svc.CreateGallery(ctx, req, "", "")

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, repo.addCalls)
	})
}
