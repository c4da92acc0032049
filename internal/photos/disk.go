package photos

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	cl "topalbums/pkg/catalog"

	"github.com/pkg/errors"
)

// DefaultPublicPath is the URL path prefix photos are served under.
const DefaultPublicPath = "/albums/image/"

const defaultExtension = ".png"

// Config holds the storage directory and the pieces used to build public
// photo URLs.
type Config struct {
	Dir        string
	BaseURL    string
	PublicPath string
}

// Disk stores album photos as files in a single directory. The stored
// filename is derived from the album id only, so a new upload for the same
// album always replaces the previous file.
type Disk struct {
	dir        string
	baseURL    string
	publicPath string
}

// New returns a Disk photo store for the provided config.
func New(c Config) *Disk {
	if c.PublicPath == "" {
		c.PublicPath = DefaultPublicPath
	}
	return &Disk{
		dir:        c.Dir,
		baseURL:    c.BaseURL,
		publicPath: c.PublicPath,
	}
}

// Dir returns the directory photos are written to.
func (d *Disk) Dir() string {
	return d.dir
}

// Store writes the contents of r to <dir>/<id><ext> and returns the public
// URL of the file. The directory is created if it does not exist.
func (d *Disk) Store(id string, r io.Reader, filename string) (string, error) {
	name := Filename(id, filename)
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", &cl.StorageError{Op: "mkdir", Path: d.dir, Err: err}
	}

	target := filepath.Join(d.dir, name)
	if err := writeFile(target, r); err != nil {
		return "", err
	}
	return d.URL(name), nil
}

// Open opens a stored photo for reading. Names that would escape the storage
// directory are rejected.
func (d *Disk) Open(filename string) (*os.File, error) {
	if !validFilename(filename) {
		return nil, errors.Wrap(cl.ErrInvalidFilename, filename)
	}
	f, err := os.Open(filepath.Join(d.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(cl.ErrNotFound, "image %s", filename)
		}
		return nil, errors.Wrap(err, "open image")
	}
	return f, nil
}

// URL returns the public URL for a stored filename.
func (d *Disk) URL(filename string) string {
	return d.baseURL + d.publicPath + filename
}

// Filename returns the stored filename for an album id and the name of the
// uploaded file: the id followed by everything from the last dot of the
// original name, or ".png" when it has no dot.
func Filename(id, original string) string {
	return id + Extension(original)
}

// Extension returns the extension of name including the leading dot.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return defaultExtension
	}
	return name[i:]
}

// writeFile streams r into a temporary file next to target and renames it
// over target, so readers never observe a partially written photo.
func writeFile(target string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return &cl.StorageError{Op: "create", Path: target, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &cl.StorageError{Op: "write", Path: target, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &cl.StorageError{Op: "close", Path: target, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return &cl.StorageError{Op: "chmod", Path: target, Err: err}
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return &cl.StorageError{Op: "rename", Path: target, Err: err}
	}
	return nil
}

func validFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return !strings.HasPrefix(name, ".")
}
