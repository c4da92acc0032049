package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	cl "topalbums/pkg/catalog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/pkg/errors"
)

const tableAlbums = "albums"

const (
	albumsColumnID          = `"id"`
	albumsColumnName        = `"name"`
	albumsColumnArtist      = `"artist"`
	albumsColumnReleaseYear = `"release_year"`
	albumsColumnGenre       = `"genre"`
	albumsColumnAlbumURL    = `"album_url"`
	albumsColumnPhotoURL    = `"photo_url"`
	albumsColumnCreatedAt   = `"created_at"`
	albumsColumnUpdatedAt   = `"updated_at"`
)

var albumsColumns = []string{
	albumsColumnID,
	albumsColumnName,
	albumsColumnArtist,
	albumsColumnReleaseYear,
	albumsColumnGenre,
	albumsColumnAlbumURL,
	albumsColumnPhotoURL,
	albumsColumnCreatedAt,
	albumsColumnUpdatedAt,
}

// Columns rewritten when Save hits an existing row. created_at is left alone.
var albumsUpdateColumns = []string{
	albumsColumnName,
	albumsColumnArtist,
	albumsColumnReleaseYear,
	albumsColumnGenre,
	albumsColumnAlbumURL,
	albumsColumnPhotoURL,
	albumsColumnUpdatedAt,
}

var albumsSortColumns = map[cl.SortKey]string{
	cl.SortCreatedAt: albumsColumnCreatedAt,
}

func (p *Postgres) FindByID(ctx context.Context, id string) (cl.Album, bool, error) {
	var a cl.Album
	qv, err := buildFindAlbumQuery(id)
	if err != nil {
		return a, false, errors.Wrap(err, "build find album query")
	}
	err = p.sqldb.GetContext(ctx, &a, qv.query, qv.args...)
	if errors.Is(err, sql.ErrNoRows) {
		return cl.Album{}, false, nil
	}
	if err != nil {
		return a, false, errors.Wrap(err, "execute find album query")
	}
	return a, true, nil
}

func buildFindAlbumQuery(id string) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableAlbums, albumsColumns)...).
		From(tableAlbums).
		Where(sq.Eq{albumsColumnID: id}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "find album build query into SQL string")
}

func (p *Postgres) Save(ctx context.Context, album cl.Album) (cl.Album, error) {
	now := p.now()
	if album.ID == "" {
		album.ID = uuid.NewString()
	}
	if album.CreatedAt.IsZero() {
		album.CreatedAt = now
	}
	album.UpdatedAt = now

	var res cl.Album
	qv, err := buildSaveAlbumQuery(album)
	if err != nil {
		return res, errors.Wrap(err, "build save album query")
	}
	err = p.sqldb.GetContext(ctx, &res, qv.query, qv.args...)
	if err != nil {
		return res, errors.Wrap(err, "execute save album query")
	}
	return res, nil
}

func buildSaveAlbumQuery(a cl.Album) (QueryValues, error) {
	q, args, err := psql.
		Insert(tableAlbums).
		Columns(albumsColumns...).
		Values(
			a.ID,
			a.Name,
			a.Artist,
			a.ReleaseYear,
			a.Genre,
			a.AlbumURL,
			a.PhotoURL,
			a.CreatedAt,
			a.UpdatedAt,
		).
		Suffix(upsertSuffix(albumsColumnID, albumsUpdateColumns) + " RETURNING " + strings.Join(albumsColumns, ", ")).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "save album build query into SQL string")
}

func (p *Postgres) Delete(ctx context.Context, album cl.Album) error {
	qv, err := buildDeleteAlbumQuery(album.ID)
	if err != nil {
		return errors.Wrap(err, "build delete album query")
	}
	_, err = p.sqldb.ExecContext(ctx, qv.query, qv.args...)
	return errors.Wrap(err, "execute delete album query")
}

func buildDeleteAlbumQuery(id string) (QueryValues, error) {
	q, args, err := psql.
		Delete(tableAlbums).
		Where(sq.Eq{albumsColumnID: id}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "delete album build query into SQL string")
}

func (p *Postgres) FindAll(ctx context.Context, req cl.PageRequest) (cl.AlbumPage, error) {
	res := cl.AlbumPage{
		Albums: []cl.Album{},
		Page:   req.Page,
		Size:   req.Size,
	}
	if req.Page < 0 || req.Size < 0 {
		return res, cl.ErrInvalidPage
	}
	sortColumn, ok := albumsSortColumns[req.Sort]
	if !ok {
		return res, errors.Errorf("unsupported sort key %q", req.Sort)
	}

	qv, err := buildCountAlbumsQuery()
	if err != nil {
		return res, errors.Wrap(err, "build count albums query")
	}
	err = p.sqldb.GetContext(ctx, &res.Total, qv.query, qv.args...)
	if err != nil {
		return res, errors.Wrap(err, "execute count albums query")
	}

	if req.Size == 0 || req.Offset() >= res.Total {
		return res, nil
	}

	var r []cl.Album
	qv, err = buildListAlbumsQuery(req, sortColumn)
	if err != nil {
		return res, errors.Wrap(err, "build list albums query")
	}
	err = p.sqldb.SelectContext(ctx, &r, qv.query, qv.args...)
	if err != nil {
		return res, errors.Wrap(err, "execute list albums query")
	}
	if len(r) > 0 {
		res.Albums = r
	}
	return res, nil
}

func buildCountAlbumsQuery() (QueryValues, error) {
	q, args, err := psql.
		Select("COUNT(*)").
		From(tableAlbums).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "count albums build query into SQL string")
}

func buildListAlbumsQuery(req cl.PageRequest, sortColumn string) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableAlbums, albumsColumns)...).
		From(tableAlbums).
		OrderBy(
			tableColumn(tableAlbums, sortColumn)+" ASC",
			tableColumn(tableAlbums, albumsColumnID)+" ASC",
		).
		Limit(uint64(req.Size)).
		Offset(uint64(req.Offset())).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "list albums build query into SQL string")
}

func upsertSuffix(conflict string, columns []string) string {
	sets := make([]string, 0, len(columns))
	for _, c := range columns {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", conflict, strings.Join(sets, ", "))
}
