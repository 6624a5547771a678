package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dryack/gRetireSim/core/jobs"
	"github.com/dryack/gRetireSim/core/simulation"
	"github.com/dryack/gRetireSim/core/statistics"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	config *koanf.Koanf
	router *gin.Engine
	cache  statistics.Cache
	db     *pgxpool.Pool
	gen    *simulation.Generator
}

func NewServer(cfg *koanf.Koanf) (*Server, error) {
	router := gin.Default()

	// Load templates
	router.LoadHTMLGlob("web/templates/*")

	// Initialize Dragonfly client
	cacheAddr := cfg.String("dragonfly.address")
	fmt.Printf("Connecting to Dragonfly at %s\n", cacheAddr)
	client := redis.NewClient(&redis.Options{
		Addr: cacheAddr,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		fmt.Printf("Error connecting to Dragonfly: %v\n", err)
		// Don't return here, allow the server to start without cache
	} else {
		fmt.Println("Successfully connected to Dragonfly")
	}

	// Postgres is optional; without it results only live in the cache
	var pool *pgxpool.Pool
	if url := cfg.String("postgres.url"); url != "" {
		p, err := pgxpool.Connect(ctx, url)
		if err != nil {
			fmt.Printf("Error connecting to Postgres: %v\n", err)
		} else {
			pool = p
		}
	}

	s := &Server{
		config: cfg,
		router: router,
		cache:  statistics.NewDragonflyCache(client, cfg.Int("cache.max_entries")),
		db:     pool,
		gen:    simulation.NewGenerator(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)

	apiGroup := s.router.Group("/api")
	{
		apiGroup.POST("/simulate", s.handleSimulate)
		apiGroup.GET("/scenario", s.handleScenario)
		apiGroup.POST("/report", s.handleReport)
		apiGroup.GET("/encode", s.handleEncodeScenario)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"defaults": s.defaultParameters(),
	})
}

// defaultParameters starts from the library defaults and applies the
// deployment's configured simulation count.
func (s *Server) defaultParameters() simulation.Parameters {
	params := simulation.DefaultParameters()
	if n := s.config.Int("simulation.default_n"); n > 0 {
		params.NSimulations = n
	}
	return params
}

// StartJobs launches the background cache-to-database sync. It is a no-op
// without a Postgres connection.
func (s *Server) StartJobs(ctx context.Context) {
	if s.db == nil {
		return
	}
	job := jobs.NewSyncJob(s.cache, statistics.NewPostgresDB(s.db))
	go job.Start(ctx)
}

func (s *Server) Run() error {
	return s.router.Run(s.config.String("server.address"))
}
