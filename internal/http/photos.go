package http

import (
	"io"
	"net/http"
	cl "topalbums/pkg/catalog"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

const uploadFormField = "file"

// UploadAlbumPhoto stores the multipart "file" field as the album's cover
// photo and returns its public URL.
func (h *Handler) UploadAlbumPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	id, err := parseAlbumID(r)
	if err != nil {
		h.Logger.Error("[UploadAlbumPhoto] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		if h.bodyTruncated(r, err) {
			h.Logger.Warn("[UploadAlbumPhoto] upload exceeds body limit",
				"request_id", reqID,
				"limit", h.maxBodyBytes(),
				"content_length", r.ContentLength,
				"details", err.Error())
			_ = httputils.WriteJSONError(w, v, cl.ErrFileTooLarge.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		h.Logger.Error("[UploadAlbumPhoto] error reading file",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, cl.ErrMissingFile.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.Albums.UploadPhoto(ctx, id, file, header.Filename)
	if err != nil {
		h.writeError(w, r, "[UploadAlbumPhoto] error uploading photo", err)
		return
	}

	_ = httputils.WriteJSON(w, v, cl.UploadPhotoRes{PhotoURL: url}, http.StatusOK)
}

// bodyTruncated reports whether a failed multipart read was caused by the
// request body limit. The limit reader ends the body with a plain EOF, which
// the multipart parser reports as an unexpected EOF inside a part.
func (h *Handler) bodyTruncated(r *http.Request, err error) bool {
	if r.ContentLength > int64(h.maxBodyBytes()) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}

// GetAlbumPhoto serves a stored photo by its filename.
func (h *Handler) GetAlbumPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	filename := mux.Vars(r)["filename"]
	f, err := h.Photos.Open(filename)
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, cl.ErrInvalidFilename):
			code = http.StatusBadRequest
		case errors.Is(err, cl.ErrNotFound):
			code = http.StatusNotFound
		}
		h.Logger.Warn("[GetAlbumPhoto] error opening image",
			"request_id", reqID,
			"filename", filename,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), code)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		h.Logger.Error("[GetAlbumPhoto] error reading image",
			"request_id", reqID,
			"filename", filename,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusInternalServerError)
		return
	}

	http.ServeContent(w, r, filename, fi.ModTime(), f)
}
