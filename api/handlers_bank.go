package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetBalances(c *gin.Context) {
	address := c.Param("address")
	c.JSON(http.StatusOK, gin.H{
		"address":  address,
		"balances": s.app.BankKeeper.AllBalances(address),
	})
}

// handleGetEvents serves the persisted event history. Returns 503 when the
// node runs without a database.
func (s *Server) handleGetEvents(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "event history not enabled"})
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	events, err := s.db.RecentEvents(c.Query("type"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "query failed", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
