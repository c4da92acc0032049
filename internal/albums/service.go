// Package albums implements the album catalog operations on top of an album
// store and a photo store.
//
// The service does no locking of its own. An existence check and the write
// that follows it are separate store calls, so a concurrent delete between
// the two can be undone by the write, and two uploads for the same album race
// on both the file and the record.
package albums

import (
	"context"
	"io"
	"time"
	"topalbums/internal"
	cl "topalbums/pkg/catalog"

	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	"gopkg.in/guregu/null.v3"
)

// Service orchestrates album persistence and photo storage.
type Service struct {
	store  internal.AlbumStore
	photos internal.PhotoStore
	logger tools.Logger
}

var _ internal.AlbumService = (*Service)(nil)

// New returns a Service using the provided stores.
func New(store internal.AlbumStore, photos internal.PhotoStore, logger tools.Logger) *Service {
	return &Service{
		store:  store,
		photos: photos,
		logger: logger,
	}
}

// List returns one page of albums in creation order.
func (s *Service) List(ctx context.Context, page, size int) (cl.AlbumPage, error) {
	if page < 0 || size < 0 {
		return cl.AlbumPage{}, cl.ErrInvalidPage
	}
	s.logger.Info("fetching albums", "page", page, "size", size)

	res, err := s.store.FindAll(ctx, cl.PageRequest{
		Page: page,
		Size: size,
		Sort: cl.SortCreatedAt,
	})
	if err != nil {
		return res, errors.Wrap(err, "find albums")
	}

	s.logger.Debug("retrieved albums", "count", len(res.Albums), "total", res.Total)
	return res, nil
}

// Get returns the album with the given id, or an error matching
// catalog.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (cl.Album, error) {
	a, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return cl.Album{}, errors.Wrapf(err, "find album %s", id)
	}
	if !ok {
		s.logger.Warn("album not found", "album_id", id)
		return cl.Album{}, errors.Wrapf(cl.ErrNotFound, "album %s", id)
	}
	return a, nil
}

// Create stores a new album. The id, photo URL and timestamps on the input
// are discarded so that the store always inserts and stamps the record.
func (s *Service) Create(ctx context.Context, album cl.Album) (cl.Album, error) {
	album.ID = ""
	album.PhotoURL = null.String{}
	album.CreatedAt = time.Time{}
	album.UpdatedAt = time.Time{}

	a, err := s.store.Save(ctx, album)
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "save album")
	}

	s.logger.Info("album created", "album_id", a.ID, "name", a.Name)
	return a, nil
}

// Delete removes an existing album. The album's stored photo, if any, is
// left on disk.
func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, a); err != nil {
		return errors.Wrapf(err, "delete album %s", id)
	}

	s.logger.Info("album deleted", "album_id", id)
	return nil
}

// UploadPhoto stores the photo for an existing album and records its URL on
// the album. If the photo is written but the album cannot be saved, the file
// stays on disk and the error is returned.
func (s *Service) UploadPhoto(ctx context.Context, id string, r io.Reader, filename string) (string, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.photos.Store(a.ID, r, filename)
	if err != nil {
		s.logger.Error("failed to store photo",
			"album_id", id,
			"details", err.Error(),
		)
		return "", errors.Wrapf(err, "store photo for album %s", id)
	}

	a.PhotoURL = null.StringFrom(url)
	if _, err := s.store.Save(ctx, a); err != nil {
		s.logger.Error("photo stored but album not updated",
			"album_id", id,
			"photo_url", url,
			"details", err.Error(),
		)
		return "", errors.Wrapf(err, "save photo url for album %s", id)
	}

	s.logger.Info("photo uploaded", "album_id", id, "photo_url", url)
	return url, nil
}
