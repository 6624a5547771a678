package api

import (
	"errors"
	"net/http"

	"github.com/dryack/gRetireSim/core/report"
	"github.com/dryack/gRetireSim/core/simulation"
	"github.com/dryack/gRetireSim/core/statistics"
	"github.com/gin-gonic/gin"
)

// handleReport runs a simulation and returns the formatted text report.
// Reports always come from a fresh run so the recommendation reflects the
// exact parameters in the request body.
func (s *Server) handleReport(c *gin.Context) {
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

	gen := s.gen
	if req.Seed != nil {
		gen = simulation.NewSeededGenerator(*req.Seed)
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

	c.String(http.StatusOK, report.Generate(summary, params))
}
