package internal

import (
	"context"
	"io"
	"os"
	cl "topalbums/pkg/catalog"
)

// AlbumStore is the persistence contract for albums. FindByID reports
// absence through its boolean result rather than an error. Save inserts when
// no row exists for the album's id (or the id is empty) and fully replaces
// the row otherwise.
type AlbumStore interface {
	FindByID(ctx context.Context, id string) (cl.Album, bool, error)
	Save(ctx context.Context, album cl.Album) (cl.Album, error)
	Delete(ctx context.Context, album cl.Album) error
	FindAll(ctx context.Context, req cl.PageRequest) (cl.AlbumPage, error)
}

// PhotoStore persists album cover photos and returns their public URL.
type PhotoStore interface {
	Store(id string, r io.Reader, filename string) (string, error)
}

// PhotoOpener opens a stored photo by its stored filename.
type PhotoOpener interface {
	Open(filename string) (*os.File, error)
}

// AlbumService is the set of album operations exposed to the HTTP layer.
type AlbumService interface {
	List(ctx context.Context, page, size int) (cl.AlbumPage, error)
	Get(ctx context.Context, id string) (cl.Album, error)
	Create(ctx context.Context, album cl.Album) (cl.Album, error)
	Delete(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, id string, r io.Reader, filename string) (string, error)
}
