package http

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
)

// Handler mounts all the handlers at the appropriate routes and adds any required middleware.
func (h *Handler) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(httputils.TimeoutMiddleware(1 * time.Minute))
	r.Use(httputils.RequestIDMiddleware)
	r.Use(httputils.RealIPMiddleware)
	r.Use(httputils.LimitReaderMiddleware(h.maxBodyBytes()))
	r.Use(httputils.LoggingMiddleware(h.Logger))
	r.Use(httputils.RecoverMiddleware(h.Logger, httputils.InternalServerErrorHandler(h.Logger)))
	r.Use(httputils.MaxConnectionsMiddleware(5000, httputils.ServiceUnavailableHandler(h.Logger)))
	r.Use(httputils.ConcurrentLimitMiddleware(250, httputils.ServiceUnavailableHandler(h.Logger)))

	r.MethodNotAllowedHandler = httputils.MethodNotAllowedHandler(h.Logger)
	r.NotFoundHandler = httputils.NotFoundHandler(h.Logger)

	versionHandler := httputils.VersionHandler(h.AppName, h.Version, h.Logger)
	r.Methods("GET").Path("/").Name("root").Handler(versionHandler)
	r.Methods("GET").Path("/version").Name("version").Handler(versionHandler)

	r.Methods("GET").Path("/albums/image/{filename}").Name("get_album_photo").HandlerFunc(h.GetAlbumPhoto)
	r.Methods("GET").Path("/albums").Name("list_albums").HandlerFunc(h.ListAlbums)
	r.Methods("POST").Path("/albums").Name("create_album").HandlerFunc(h.CreateAlbum)
	r.Methods("GET").Path("/albums/{id}").Name("get_album").HandlerFunc(h.GetAlbum)
	r.Methods("DELETE").Path("/albums/{id}").Name("delete_album").HandlerFunc(h.DeleteAlbum)
	r.Methods("PUT").Path("/albums/{id}/image").Name("upload_album_photo").HandlerFunc(h.UploadAlbumPhoto)

	h.router = r
	return h.cors()(r)
}

func (h *Handler) cors() func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(h.AllowedOrigins),
		handlers.AllowCredentials(),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		}),
		handlers.AllowedHeaders(corsHeaders),
		handlers.ExposedHeaders(corsHeaders),
	)
}

var corsHeaders = []string{
	"Origin",
	"Access-Control-Allow-Origin",
	"Content-Type",
	"Accept",
	"Authorization",
	"X-Requested-With",
	"Access-Control-Request-Method",
	"Access-Control-Request-Headers",
	"Access-Control-Allow-Credentials",
	"Location",
}
