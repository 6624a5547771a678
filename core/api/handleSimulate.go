package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dryack/gRetireSim/core/plot"
	"github.com/dryack/gRetireSim/core/scenario"
	"github.com/dryack/gRetireSim/core/simulation"
	"github.com/dryack/gRetireSim/core/statistics"
	"github.com/dryack/gRetireSim/core/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/redis/go-redis/v9"
)

// simulateRequest is the JSON parameter bundle. Pointer fields distinguish
// omitted from zero; omitted fields take the deployment defaults.
type simulateRequest struct {
	CurrentSavings      *float64 `json:"current_savings"`
	MonthlyContribution *float64 `json:"monthly_contribution"`
	Years               *int     `json:"years"`
	AnnualReturn        *float64 `json:"annual_return"`
	AnnualVolatility    *float64 `json:"annual_volatility"`
	InflationRate       *float64 `json:"inflation_rate"`
	GoalAmount          *float64 `json:"goal_amount"`
	NSimulations        *int     `json:"n_simulations"`
	SkipYearEnd         bool     `json:"skip_year_end"`
	Seed                *uint64  `json:"seed"`
}

func (r *simulateRequest) parameters(defaults simulation.Parameters) simulation.Parameters {
	params := defaults
	if r.CurrentSavings != nil {
		params.CurrentSavings = *r.CurrentSavings
	}
	if r.MonthlyContribution != nil {
		params.MonthlyContribution = *r.MonthlyContribution
	}
	if r.Years != nil {
		params.Years = *r.Years
	}
	if r.AnnualReturn != nil {
		params.AnnualReturn = *r.AnnualReturn
	}
	if r.AnnualVolatility != nil {
		params.AnnualVolatility = *r.AnnualVolatility
	}
	if r.InflationRate != nil {
		params.InflationRate = *r.InflationRate
	}
	if r.GoalAmount != nil {
		params.GoalAmount = *r.GoalAmount
	}
	if r.NSimulations != nil {
		params.NSimulations = *r.NSimulations
	}
	if r.SkipYearEnd {
		params.Policy = simulation.ContributeSkipYearEnd
	}
	return params
}

func (s *Server) handleSimulate(c *gin.Context) {
	start := time.Now()

	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	params := req.parameters(s.defaultParameters())
	if err := params.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	s.runScenario(c, params, req.Seed, start)
}

// runScenario serves a parameter set from the cache, then the database, and
// finally a fresh computation. Charts ship only with fresh runs, where the
// trajectory matrix still exists. Seeded requests always compute fresh so
// the seed actually pins the draw sequence.
func (s *Server) runScenario(c *gin.Context, params simulation.Parameters, seed *uint64, start time.Time) {
	key := scenario.Canonical(params)

	if seed == nil {
		cached, err := s.cache.Get(c.Request.Context(), key)
		if err == nil {
			s.sendSummary(c, params, cached.Summary, nil, "cache", time.Since(start))
			return
		}
		if !errors.Is(err, redis.Nil) {
			log.Printf("Cache error: %v", err)
		}

		if s.db != nil {
			stored, err := statistics.NewPostgresDB(s.db).Get(c.Request.Context(), key)
			if err == nil {
				go s.setCacheAndLog(key, stored)
				s.sendSummary(c, params, stored.Summary, nil, "database", time.Since(start))
				return
			}
			if !errors.Is(err, pgx.ErrNoRows) {
				log.Printf("Database error: %v", err)
			}
		}
	}

	gen := s.gen
	if seed != nil {
		gen = simulation.NewSeededGenerator(*seed)
	}

	matrix, err := gen.Run(params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, simulation.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	summary, err := statistics.Summarize(matrix, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	charts := plot.Build(matrix, summary, params)

	if seed == nil {
		result := &statistics.CachedResult{RunID: uuid.New(), Summary: summary}
		go s.storeResult(key, result)
	}

	s.sendSummary(c, params, summary, charts, "calculation", time.Since(start))
}

func (s *Server) sendSummary(c *gin.Context, params simulation.Parameters, summary *statistics.Summary, charts *plot.Charts, source string, duration time.Duration) {
	resp := gin.H{
		"success":          true,
		"params":           params,
		"summary":          summary,
		"source":           source,
		"request_duration": utils.FormatDuration(duration),
	}
	if charts != nil {
		resp["charts"] = charts
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) setCacheAndLog(key string, result *statistics.CachedResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.cache.Set(ctx, key, result); err != nil {
		log.Printf("Error setting cache: %v", err)
	}
}

// storeResult writes a fresh result to the cache and, when available, the
// database.
func (s *Server) storeResult(key string, result *statistics.CachedResult) {
	s.setCacheAndLog(key, result)
	if s.db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := statistics.NewPostgresDB(s.db).Set(ctx, key, result); err != nil {
		log.Printf("Error persisting result: %v", err)
	}
}
