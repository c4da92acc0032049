package mock

import (
	"context"
	"topalbums/internal"
	cl "topalbums/pkg/catalog"
)

var _ internal.AlbumStore = (*AlbumStore)(nil)

// AlbumStore implements internal.AlbumStore for mocking purposes.
type AlbumStore struct {
	FindByIDFn func(ctx context.Context, id string) (cl.Album, bool, error)
	SaveFn     func(ctx context.Context, album cl.Album) (cl.Album, error)
	DeleteFn   func(ctx context.Context, album cl.Album) error
	FindAllFn  func(ctx context.Context, req cl.PageRequest) (cl.AlbumPage, error)
}

// FindByID proxies the request to the FindByIDFn that's injected when
// the mock store is created.
func (s *AlbumStore) FindByID(ctx context.Context, id string) (cl.Album, bool, error) {
	return s.FindByIDFn(ctx, id)
}

// Save proxies the request to the SaveFn that's injected when
// the mock store is created.
func (s *AlbumStore) Save(ctx context.Context, album cl.Album) (cl.Album, error) {
	return s.SaveFn(ctx, album)
}

// Delete proxies the request to the DeleteFn that's injected when
// the mock store is created.
func (s *AlbumStore) Delete(ctx context.Context, album cl.Album) error {
	return s.DeleteFn(ctx, album)
}

// FindAll proxies the request to the FindAllFn that's injected when
// the mock store is created.
func (s *AlbumStore) FindAll(ctx context.Context, req cl.PageRequest) (cl.AlbumPage, error) {
	return s.FindAllFn(ctx, req)
}
