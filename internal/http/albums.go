package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	cl "topalbums/pkg/catalog"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

const (
	defaultPage = 0
	defaultSize = 10
	maxSize     = 100
)

// ListAlbums get a page of albums in creation order
func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	page, size, err := parseListAlbumsRequest(v)
	if err != nil {
		h.Logger.Error("[ListAlbums] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.Albums.List(ctx, page, size)
	if err != nil {
		h.writeError(w, r, "[ListAlbums] error getting albums list", err)
		return
	}

	_ = httputils.WriteJSON(w, v, cl.ListAlbumsRes{
		Albums: res.Albums,
		Total:  res.Total,
		Page:   res.Page,
		Size:   res.Size,
	}, http.StatusOK)
}

func parseListAlbumsRequest(v url.Values) (int, int, error) {
	page, err := parseNonNegative(v, "page", defaultPage)
	if err != nil {
		return 0, 0, err
	}
	size, err := parseNonNegative(v, "size", defaultSize)
	if err != nil {
		return 0, 0, err
	}
	if size > maxSize {
		return 0, 0, cl.ErrPageTooLarge
	}
	return page, size, nil
}

func parseNonNegative(v url.Values, key string, def int) (int, error) {
	raw := v.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.Wrapf(cl.ErrInvalidPage, "[parseListAlbumsRequest] invalid %s %q", key, raw)
	}
	return n, nil
}

// GetAlbum get the details of a album matching with the album id
func (h *Handler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	id, err := parseAlbumID(r)
	if err != nil {
		h.Logger.Error("[GetAlbum] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.Albums.Get(ctx, id)
	if err != nil {
		h.writeError(w, r, "[GetAlbum] error getting album", err)
		return
	}

	_ = httputils.WriteJSON(w, v, res, http.StatusOK)
}

// CreateAlbum creates a new album from the JSON body
func (h *Handler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	req, err := parseCreateAlbumRequest(r)
	if err != nil {
		h.Logger.Error("[CreateAlbum] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.Albums.Create(ctx, req.Album())
	if err != nil {
		h.writeError(w, r, "[CreateAlbum] error creating album", err)
		return
	}

	w.Header().Set("Location", "/albums/"+res.ID)
	_ = httputils.WriteJSON(w, v, res, http.StatusCreated)
}

func parseCreateAlbumRequest(r *http.Request) (cl.CreateAlbumReq, error) {
	var req cl.CreateAlbumReq
	if err := httputils.ReadJSON(r.Body, &req); err != nil {
		return req, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Artist = strings.TrimSpace(req.Artist)
	if req.Name == "" {
		return req, cl.ErrMissingName
	}
	if req.Artist == "" {
		return req, cl.ErrMissingArtist
	}
	return req, nil
}

// DeleteAlbum deletes the album matching the album id
func (h *Handler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	id, err := parseAlbumID(r)
	if err != nil {
		h.Logger.Error("[DeleteAlbum] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Albums.Delete(ctx, id); err != nil {
		h.writeError(w, r, "[DeleteAlbum] error deleting album", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseAlbumID(r *http.Request) (string, error) {
	id := mux.Vars(r)["id"]
	if id == "-" || id == "" {
		return "", errors.New("[parseAlbumID] album id must be provided")
	}
	return id, nil
}

// writeError maps service errors onto status codes and writes the JSON
// error response.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	v := r.URL.Query()
	reqID := requestid.Get(r.Context())

	var se *cl.StorageError
	switch {
	case errors.Is(err, cl.ErrNotFound):
		h.Logger.Warn(msg,
			"request_id", reqID,
			"details", err.Error(),
		)
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusNotFound)
	case errors.Is(err, cl.ErrInvalidPage):
		h.Logger.Warn(msg,
			"request_id", reqID,
			"details", err.Error(),
		)
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
	case errors.As(err, &se):
		h.Logger.Error(msg,
			"request_id", reqID,
			"details", err.Error(),
		)
		_ = httputils.WriteJSONError(w, v, "unable to save image", http.StatusInternalServerError)
	default:
		h.Logger.Error(msg,
			"request_id", reqID,
			"details", err.Error(),
		)
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusInternalServerError)
	}
}
