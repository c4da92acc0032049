package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"
	"topalbums/internal"
	"topalbums/internal/albums"
	"topalbums/internal/http"
	"topalbums/internal/memory"
	"topalbums/internal/photos"
	"topalbums/internal/postgres"

	"cloud.google.com/go/compute/metadata"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/lifecycle"
	"github.com/twitsprout/tools/zap"
)

var version string

type variables struct {
	Addr           string   `required:"true" envconfig:"addr"`
	AppName        string   `required:"true" envconfig:"app_name"`
	LogLevel       string   `default:"info" envconfig:"log_level"`
	Store          string   `default:"postgres" envconfig:"store"`
	PostgresHost   string   `required:"false" envconfig:"postgres_host"`
	PostgresPort   int      `required:"false" envconfig:"postgres_port"`
	PostgresDB     string   `required:"false" envconfig:"postgres_db"`
	PostgresUser   string   `required:"false" envconfig:"postgres_user"`
	PostgresPass   string   `required:"false" envconfig:"postgres_pass"`
	BaseURL        string   `default:"http://localhost:8080" envconfig:"base_url"`
	PhotoDir       string   `default:"albumImages" envconfig:"photo_dir"`
	AllowedOrigins []string `default:"http://localhost:3000" envconfig:"allowed_origins"`
	MaxBodyBytes   int      `required:"false" envconfig:"max_body_bytes"`
}

func loadVariables() variables {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	if metadata.OnGCE() {
		port := os.Getenv("PORT")
		err := os.Setenv("TOPALBUMS_ADDR", ":"+port)
		if err != nil {
			log.Fatal(err)
		}
	}

	var v variables
	envconfig.MustProcess("topalbums", &v)
	return v
}

func main() {
	v := loadVariables()

	logger := zap.New("topalbums", version, os.Stdout)
	if err := logger.SetLevel(v.LogLevel); err != nil {
		logger.Error("failed to set log level", "error", err.Error())
	}

	store, closeStore, err := newAlbumStore(v, logger)
	if err != nil {
		logger.Error("failed to create album store",
			"store", v.Store,
			"error", err.Error())
		os.Exit(1)
	}
	defer closeStore()

	disk := photos.New(photos.Config{
		Dir:     v.PhotoDir,
		BaseURL: v.BaseURL,
	})
	svc := albums.New(store, disk, logger)

	ctx := context.Background()

	lc, ctx := lifecycle.New(ctx, logger)
	lc.Start("topalbums root context", func() error {
		<-ctx.Done()
		return ctx.Err()
	})

	h := http.Handler{
		Logger:         logger,
		Version:        version,
		AppName:        v.AppName,
		Albums:         svc,
		Photos:         disk,
		AllowedOrigins: v.AllowedOrigins,
		MaxBodyBytes:   v.MaxBodyBytes,
	}
	logger.Info("starting server",
		"addr", v.Addr,
		"store", v.Store,
		"photo_dir", disk.Dir())
	server := httputils.NewServer(v.Addr, h.Handler())
	lc.StartServer(server)
	lc.StartSignals(syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	_ = lc.Wait(15 * time.Second)
}

// newAlbumStore returns the album store selected by v.Store along with a
// function releasing its resources.
func newAlbumStore(v variables, logger tools.Logger) (internal.AlbumStore, func(), error) {
	switch v.Store {
	case "memory":
		logger.Warn("using in-memory album store, data is lost on restart")
		return memory.NewAlbumStore(), func() {}, nil
	case "postgres":
		pg, err := newPostgres(v)
		if err != nil {
			return nil, nil, err
		}
		return pg, func() {
			if err := pg.Close(); err != nil {
				logger.Error("failed to close postgres", "error", err.Error())
			}
		}, nil
	default:
		return nil, nil, errors.Errorf("unknown album store %q", v.Store)
	}
}

func newPostgres(v variables) (*postgres.Postgres, error) {
	pgConfig := postgres.Config{
		Host:       v.PostgresHost,
		Name:       v.PostgresDB,
		Password:   v.PostgresPass,
		Username:   v.PostgresUser,
		DisableSSL: true,
	}
	// Only use a Postgres port if one was provided
	if v.PostgresPort > 0 {
		pgConfig.Port = v.PostgresPort
	}
	pg, err := postgres.New(pgConfig)
	return pg, errors.Wrap(err, "connect to postgres")
}
