package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"topalbums/internal/mock"
	cl "topalbums/pkg/catalog"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	tm "github.com/twitsprout/tools/mock"
)

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("unable to create form file: %s", err.Error())
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatalf("unable to write form file: %s", err.Error())
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("unable to close multipart writer: %s", err.Error())
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadAlbumPhoto(t *testing.T) {
	photoURL := "http://localhost:8080/albums/image/1234.jpg"
	table := []struct {
		label         string
		url           string
		field         string
		uploadPhotoFn func(ctx context.Context, id string, r io.Reader, filename string) (string, error)
		expCode       int
		expRes        interface{}
	}{
		{
			label:   "should fail if the file field is missing",
			url:     "/albums/1234/image",
			field:   "photo",
			expCode: http.StatusBadRequest,
			expRes:  jsonErr(cl.ErrMissingFile.Error()),
		},
		{
			label: "should fail if the album does not exist",
			url:   "/albums/9999/image",
			field: "file",
			uploadPhotoFn: func(ctx context.Context, id string, r io.Reader, filename string) (string, error) {
				return "", errors.Wrapf(cl.ErrNotFound, "album %s", id)
			},
			expCode: http.StatusNotFound,
			expRes:  jsonErr("album 9999: not found"),
		},
		{
			label: "should fail if the photo cannot be stored",
			url:   "/albums/1234/image",
			field: "file",
			uploadPhotoFn: func(ctx context.Context, id string, r io.Reader, filename string) (string, error) {
				err := &cl.StorageError{Op: "mkdir", Path: "/photos", Err: os.ErrPermission}
				return "", errors.Wrapf(err, "store photo for album %s", id)
			},
			expCode: http.StatusInternalServerError,
			expRes:  jsonErr("unable to save image"),
		},
		{
			label: "should return the photo url",
			url:   "/albums/1234/image",
			field: "file",
			uploadPhotoFn: func(ctx context.Context, id string, r io.Reader, filename string) (string, error) {
				if id != "1234" || filename != "cover.jpg" {
					return "", errors.Errorf("unexpected upload %s %s", id, filename)
				}
				b, err := io.ReadAll(r)
				if err != nil {
					return "", err
				}
				if string(b) != "jpeg bytes" {
					return "", errors.Errorf("unexpected content %q", b)
				}
				return photoURL, nil
			},
			expCode: http.StatusOK,
			expRes:  cl.UploadPhotoRes{PhotoURL: photoURL},
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			h := newTestHandler(&mock.AlbumService{
				UploadPhotoFn: ts.uploadPhotoFn,
			}, nil)

			body, contentType := multipartBody(t, ts.field, "cover.jpg", "jpeg bytes")
			wr := httptest.NewRecorder()
			req := httptest.NewRequest("PUT", ts.url, body)
			req.Header.Set("Content-Type", contentType)
			h.router.ServeHTTP(wr, req)

			checkResponse(t, wr, ts.expCode, ts.expRes)
		})
	}
}

func TestGetAlbumPhoto(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "1234.png"), []byte("png bytes"), 0644); err != nil {
		t.Fatalf("unable to write photo: %s", err.Error())
	}

	table := []struct {
		label   string
		url     string
		openFn  func(filename string) (*os.File, error)
		expCode int
		expBody string
		expType string
	}{
		{
			label: "should serve a stored photo",
			url:   "/albums/image/1234.png",
			openFn: func(filename string) (*os.File, error) {
				return os.Open(filepath.Join(dir, filename))
			},
			expCode: http.StatusOK,
			expBody: "png bytes",
			expType: "image/png",
		},
		{
			label: "should fail for a missing photo",
			url:   "/albums/image/9999.png",
			openFn: func(filename string) (*os.File, error) {
				return nil, errors.Wrapf(cl.ErrNotFound, "image %s", filename)
			},
			expCode: http.StatusNotFound,
		},
		{
			label: "should fail for an invalid filename",
			url:   "/albums/image/.hidden",
			openFn: func(filename string) (*os.File, error) {
				return nil, errors.Wrap(cl.ErrInvalidFilename, filename)
			},
			expCode: http.StatusBadRequest,
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			h := newTestHandler(&mock.AlbumService{}, &mock.PhotoStore{
				OpenFn: ts.openFn,
			})

			wr := httptest.NewRecorder()
			req := httptest.NewRequest("GET", ts.url, nil)
			h.router.ServeHTTP(wr, req)

			if wr.Code != ts.expCode {
				t.Fatalf("unexpected response code returned: %s", cmp.Diff(ts.expCode, wr.Code))
			}
			if ts.expCode != http.StatusOK {
				return
			}
			if got := wr.Body.String(); got != ts.expBody {
				t.Fatalf("unexpected body returned: %s", cmp.Diff(ts.expBody, got))
			}
			if got := wr.Header().Get("Content-Type"); got != ts.expType {
				t.Fatalf("unexpected content type returned: %s", cmp.Diff(ts.expType, got))
			}
		})
	}
}

func TestUploadAlbumPhotoTooLarge(t *testing.T) {
	table := []struct {
		label         string
		maxBodyBytes  int
		contentLength int64
	}{
		{
			label:         "should reject a body whose declared length exceeds the limit",
			maxBodyBytes:  64,
			contentLength: 0,
		},
		{
			label:         "should reject a chunked body cut off by the limit",
			maxBodyBytes:  512,
			contentLength: -1,
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			h := &Handler{
				Albums: &mock.AlbumService{
					UploadPhotoFn: func(ctx context.Context, id string, r io.Reader, filename string) (string, error) {
						return "", errors.New("upload should not be reached")
					},
				},
				Logger:       tm.NopLogger,
				MaxBodyBytes: ts.maxBodyBytes,
			}
			h.Handler()

			body, contentType := multipartBody(t, "file", "cover.jpg", strings.Repeat("x", 4096))
			wr := httptest.NewRecorder()
			req := httptest.NewRequest("PUT", "/albums/1234/image", body)
			req.Header.Set("Content-Type", contentType)
			if ts.contentLength != 0 {
				req.ContentLength = ts.contentLength
			}
			h.router.ServeHTTP(wr, req)

			checkResponse(t, wr, http.StatusRequestEntityTooLarge, jsonErr(cl.ErrFileTooLarge.Error()))
		})
	}
}
