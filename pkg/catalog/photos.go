package catalog

import "fmt"

type UploadPhotoRes struct {
	PhotoURL string `json:"photoUrl"`
}

// StorageError reports an I/O failure while persisting a photo.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %s", e.Op, e.Path, e.Err.Error())
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
