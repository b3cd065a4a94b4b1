package main

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jmoiron/sqlx"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"church-api/internal/auth"
	"church-api/internal/config"
	"church-api/internal/handlers"
	"church-api/internal/store"
	"church-api/internal/ws"
)

func main() {
	log.Println("starting church community server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal("cannot open store:", err)
	}

	tokens := &auth.TokenIssuer{
		Secret: []byte(cfg.JWTSecret),
		TTL:    time.Duration(cfg.TokenTTLHours) * time.Hour,
	}

	hub := ws.NewHub()
	go hub.Run()

	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	handlers.Register(r, st, tokens, hub)

	log.Println("server listening on", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("could not start server:", err)
	}
}

// openStore picks the backend from config: postgres runs migrations
// and connects a pgx pool, memory is for local development.
func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Println("using in-memory store; data will not survive restarts")
		return store.NewMemory(), nil

	case "postgres":
		if err := runMigrations(cfg); err != nil {
			return nil, err
		}
		db, err := sqlx.Connect("pgx", cfg.DSN)
		if err != nil {
			return nil, err
		}
		log.Println("connected to PostgreSQL")
		return store.NewPostgres(db), nil

	default:
		return nil, errors.New("unknown STORE_DRIVER: " + cfg.StoreDriver)
	}
}

func runMigrations(cfg config.Config) error {
	m, err := migrate.New("file://"+cfg.MigrationsDir, cfg.DSN)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	log.Println("database schema up to date")
	return nil
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if cfg.CORSOrigins == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	}
	return c
}
