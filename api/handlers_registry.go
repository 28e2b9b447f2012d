package api

import (
	"net/http"

	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetAgents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"agents": s.app.RegistryKeeper.GetActiveAgents(),
		"count":  s.app.RegistryKeeper.AgentCount(),
	})
}

func (s *Server) handleGetAgent(c *gin.Context) {
	agent, err := s.app.RegistryKeeper.GetAgent(c.Param("address"))
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

func (s *Server) handleGetAgentBudget(c *gin.Context) {
	address := c.Param("address")
	remaining, err := s.app.RegistryKeeper.GetRemainingBudget(address)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address, "remaining_budget": remaining})
}

func (s *Server) handleRegisterAgent(c *gin.Context) {
	var req RegisterAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	budget, ok := math.NewIntFromString(req.DailyBudget)
	if !ok || budget.IsNegative() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "daily_budget must be a non-negative integer"})
		return
	}
	agent, err := s.app.RegistryKeeper.RegisterAgent(req.Address, budget, req.Permissions, req.Metadata)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusCreated, agent)
}

func (s *Server) handleSetAgentActive(c *gin.Context) {
	var req SetAgentActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	address := c.Param("address")
	if err := s.app.RegistryKeeper.SetActive(address, req.Active); err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address, "active": req.Active})
}
