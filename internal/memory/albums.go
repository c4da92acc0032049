package memory

import (
	"context"
	"sync"
	"time"
	cl "topalbums/pkg/catalog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// AlbumStore keeps albums in memory, in insertion order. It is meant for
// local runs and tests.
type AlbumStore struct {
	mu     sync.RWMutex
	albums map[string]cl.Album
	order  []string
	now    func() time.Time
}

// NewAlbumStore returns an empty AlbumStore.
func NewAlbumStore() *AlbumStore {
	return &AlbumStore{
		albums: make(map[string]cl.Album),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *AlbumStore) FindByID(_ context.Context, id string) (cl.Album, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.albums[id]
	return a, ok, nil
}

func (s *AlbumStore) Save(_ context.Context, album cl.Album) (cl.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if album.ID == "" {
		album.ID = uuid.NewString()
	}

	existing, ok := s.albums[album.ID]
	if ok {
		album.CreatedAt = existing.CreatedAt
	} else {
		if album.CreatedAt.IsZero() {
			album.CreatedAt = now
		}
		s.order = append(s.order, album.ID)
	}
	album.UpdatedAt = now
	s.albums[album.ID] = album
	return album, nil
}

// Delete removes the album. Deleting an album that is not stored is a no-op.
func (s *AlbumStore) Delete(_ context.Context, album cl.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.albums[album.ID]; !ok {
		return nil
	}
	delete(s.albums, album.ID)
	for i, id := range s.order {
		if id == album.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *AlbumStore) FindAll(_ context.Context, req cl.PageRequest) (cl.AlbumPage, error) {
	if req.Sort != "" && req.Sort != cl.SortCreatedAt {
		return cl.AlbumPage{}, errors.Errorf("unsupported sort key %q", req.Sort)
	}
	if req.Page < 0 || req.Size < 0 {
		return cl.AlbumPage{}, cl.ErrInvalidPage
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	res := cl.AlbumPage{
		Albums: []cl.Album{},
		Total:  len(s.order),
		Page:   req.Page,
		Size:   req.Size,
	}
	start := req.Offset()
	if req.Size == 0 || start < 0 || start >= len(s.order) {
		return res, nil
	}
	end := start + req.Size
	if end > len(s.order) {
		end = len(s.order)
	}
	for _, id := range s.order[start:end] {
		res.Albums = append(res.Albums, s.albums[id])
	}
	return res, nil
}
