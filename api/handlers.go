package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/solarsim/solarsim/sim"
	"github.com/solarsim/solarsim/sim/report"
)

// Simulate handles POST /api/v1/simulate. The request body is a scenario
// (same schema as the YAML file, JSON-encoded); the response is the full
// result sequence plus a run summary. The run is bounded, synchronous, and
// in-memory, so it executes inline on the request; cancelling the request
// cancels the run at the next year boundary.
func Simulate(c *gin.Context) {
	var sc sim.Scenario
	if err := c.ShouldBindJSON(&sc); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_REQUEST", err.Error()))
		return
	}

	engine, err := sim.NewEngine(&sc)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_SCENARIO", err.Error()))
		return
	}

	records, err := engine.Run(c.Request.Context())
	if err != nil {
		var cerr *sim.ConsistencyError
		if errors.As(err, &cerr) {
			logrus.Errorf("simulate: %v", err)
			c.JSON(http.StatusInternalServerError, errorResponse("INTERNAL_CONSISTENCY", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("SIMULATION_FAILED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, SimulateResponse{
		Records: records,
		Summary: report.Summarize(records),
	})
}

// Validate handles POST /api/v1/validate: checks a scenario without
// running it.
func Validate(c *gin.Context) {
	var sc sim.Scenario
	if err := c.ShouldBindJSON(&sc); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_REQUEST", err.Error()))
		return
	}
	sc.ApplyDefaults()
	if err := sc.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("INVALID_SCENARIO", err.Error()))
		return
	}
	c.JSON(http.StatusOK, ValidateResponse{Valid: true})
}
