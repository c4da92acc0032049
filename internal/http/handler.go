package http

import (
	"topalbums/internal"

	"github.com/gorilla/mux"
	"github.com/twitsprout/tools"
)

const defaultMaxBodyBytes = 10 << 20

type Handler struct {
	Version        string
	AppName        string
	router         *mux.Router
	Logger         tools.Logger
	Albums         internal.AlbumService
	Photos         internal.PhotoOpener
	AllowedOrigins []string
	MaxBodyBytes   int
}

func (h *Handler) maxBodyBytes() int {
	if h.MaxBodyBytes <= 0 {
		return defaultMaxBodyBytes
	}
	return h.MaxBodyBytes
}
