package mock

import (
	"context"
	"io"
	"topalbums/internal"
	cl "topalbums/pkg/catalog"
)

var _ internal.AlbumService = (*AlbumService)(nil)

// AlbumService implements internal.AlbumService for mocking purposes.
type AlbumService struct {
	ListFn        func(ctx context.Context, page, size int) (cl.AlbumPage, error)
	GetFn         func(ctx context.Context, id string) (cl.Album, error)
	CreateFn      func(ctx context.Context, album cl.Album) (cl.Album, error)
	DeleteFn      func(ctx context.Context, id string) error
	UploadPhotoFn func(ctx context.Context, id string, r io.Reader, filename string) (string, error)
}

// List calls the AlbumService's ListFn.
func (s *AlbumService) List(ctx context.Context, page, size int) (cl.AlbumPage, error) {
	return s.ListFn(ctx, page, size)
}

// Get calls the AlbumService's GetFn.
func (s *AlbumService) Get(ctx context.Context, id string) (cl.Album, error) {
	return s.GetFn(ctx, id)
}

// Create calls the AlbumService's CreateFn.
func (s *AlbumService) Create(ctx context.Context, album cl.Album) (cl.Album, error) {
	return s.CreateFn(ctx, album)
}

// Delete calls the AlbumService's DeleteFn.
func (s *AlbumService) Delete(ctx context.Context, id string) error {
	return s.DeleteFn(ctx, id)
}

// UploadPhoto calls the AlbumService's UploadPhotoFn.
func (s *AlbumService) UploadPhoto(ctx context.Context, id string, r io.Reader, filename string) (string, error) {
	return s.UploadPhotoFn(ctx, id, r, filename)
}
