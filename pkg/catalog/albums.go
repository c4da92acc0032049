package catalog

import (
	"math"
	"time"

	"gopkg.in/guregu/null.v3"
)

// SortKey names the column a page of albums is ordered by.
type SortKey string

// SortCreatedAt orders albums by creation time.
const SortCreatedAt SortKey = "created_at"

type Album struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Artist      string      `json:"artist" db:"artist"`
	ReleaseYear null.String `json:"releaseYear" db:"release_year"`
	Genre       null.String `json:"genre" db:"genre"`
	AlbumURL    null.String `json:"albumUrl" db:"album_url"`
	PhotoURL    null.String `json:"photoUrl" db:"photo_url"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// PageRequest selects one page of albums. Page is zero based.
type PageRequest struct {
	Page int
	Size int
	Sort SortKey
}

// Offset returns the number of rows that precede the requested page. When
// Page*Size does not fit in an int the result is math.MaxInt, which lies past
// the end of any store.
func (p PageRequest) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// AlbumPage is a page of albums together with the total number of albums
// in the store.
type AlbumPage struct {
	Albums []Album
	Total  int
	Page   int
	Size   int
}

type ListAlbumsRes struct {
	Albums []Album `json:"albums"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Size   int     `json:"size"`
}

type CreateAlbumReq struct {
	Name        string      `json:"name"`
	Artist      string      `json:"artist"`
	ReleaseYear null.String `json:"releaseYear"`
	Genre       null.String `json:"genre"`
	AlbumURL    null.String `json:"albumUrl"`
}

// Album converts the request body into an Album without an id.
func (r CreateAlbumReq) Album() Album {
	return Album{
		Name:        r.Name,
		Artist:      r.Artist,
		ReleaseYear: r.ReleaseYear,
		Genre:       r.Genre,
		AlbumURL:    r.AlbumURL,
	}
}
