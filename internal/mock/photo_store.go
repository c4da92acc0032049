package mock

import (
	"io"
	"os"
	"topalbums/internal"
)

var _ internal.PhotoStore = (*PhotoStore)(nil)
var _ internal.PhotoOpener = (*PhotoStore)(nil)

// PhotoStore implements internal.PhotoStore and internal.PhotoOpener for
// mocking purposes.
type PhotoStore struct {
	StoreFn func(id string, r io.Reader, filename string) (string, error)
	OpenFn  func(filename string) (*os.File, error)
}

// Store calls the PhotoStore's StoreFn.
func (s *PhotoStore) Store(id string, r io.Reader, filename string) (string, error) {
	return s.StoreFn(id, r, filename)
}

// Open calls the PhotoStore's OpenFn.
func (s *PhotoStore) Open(filename string) (*os.File, error) {
	return s.OpenFn(filename)
}
