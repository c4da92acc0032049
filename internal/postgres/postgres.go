package postgres

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jmoiron/sqlx"
	"github.com/twitsprout/tools/postgres"
)

type Config postgres.Config

var matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
var matchAllCap = regexp.MustCompile("([a-z0-9])([A-Z])")

func ToSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}

// Postgres represents the type to interact with the PostgreSQL database.
type Postgres struct {
	sqldb *sqlx.DB
	db    *postgres.DB
	now   func() time.Time
}

type QueryValues struct {
	query string
	args  []interface{}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// tableColumn qualifies a quoted column with its table name.
func tableColumn(table, column string) string {
	return fmt.Sprintf("%s.%s", table, column)
}

func tableColumns(table string, columns []string) []string {
	cs := make([]string, 0, len(columns))
	for _, c := range columns {
		cs = append(cs, tableColumn(table, c))
	}
	return cs
}

// New creates a new Postgres store.
func New(c Config) (*Postgres, error) {
	db, err := postgres.NewDB(postgres.Config(c))
	if err != nil {
		return nil, err
	}
	p := NewFromDB(db.SQLDB())
	p.db = db
	return p, nil
}

// NewFromDB creates a Postgres store on top of an already opened *sql.DB.
func NewFromDB(db *sql.DB) *Postgres {
	sqldb := sqlx.NewDb(db, "postgres")
	sqldb.MapperFunc(ToSnakeCase)
	return &Postgres{
		sqldb: sqldb,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Close releases the underlying database connections.
func (p *Postgres) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return p.sqldb.Close()
}
