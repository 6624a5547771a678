package api

import (
	"net/http"
	"time"

	"github.com/dryack/gRetireSim/core/scenario"
	"github.com/dryack/gRetireSim/core/utils"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleScenario(c *gin.Context) {
	start := time.Now()

	encoded := c.Query("expr")
	if encoded == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing encoded scenario"})
		return
	}

	shorthand, err := utils.DecodeScenario(encoded)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	params, err := scenario.Parse(shorthand)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := params.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	s.runScenario(c, params, nil, start)
}

func (s *Server) handleEncodeScenario(c *gin.Context) {
	shorthand := c.Query("scenario")
	if shorthand == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing scenario shorthand"})
		return
	}

	// Reject garbage before handing out a key for it
	if _, err := scenario.Parse(shorthand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"original": shorthand,
		"encoded":  utils.EncodeScenario(shorthand),
	})
}
