package catalog

import "errors"

var ErrNotFound = errors.New("not found")
var ErrMissingName = errors.New("album name cannot be empty")
var ErrMissingArtist = errors.New("artist name must not be empty")
var ErrInvalidPage = errors.New("page and size must be non-negative integers")
var ErrPageTooLarge = errors.New("size must not be greater than 100")
var ErrMissingFile = errors.New("file must be provided in multipart field \"file\"")
var ErrFileTooLarge = errors.New("image exceeds the maximum upload size")
var ErrInvalidFilename = errors.New("invalid image filename")
