package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thryx-chain/thryx/internal/cache"
	oracletypes "github.com/thryx-chain/thryx/x/oracle/types"
)

// handleGetOraclePrice serves consensus prices through the read cache.
// Stale feeds are still served, flagged for the caller.
func (s *Server) handleGetOraclePrice(c *gin.Context) {
	pair := c.Query("pair")
	if pair == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "pair query parameter required"})
		return
	}

	if cached, err := s.prices.Get(c.Request.Context(), pair); err == nil {
		c.JSON(http.StatusOK, gin.H{
			"pair":       cached.Pair,
			"price":      cached.Price,
			"updated_at": cached.UpdatedAt,
			"stale":      false,
			"cached":     true,
		})
		return
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Error("price cache read failed", "pair", pair, "err", err)
	}

	price, updatedAt, stale, err := s.app.OracleKeeper.GetPrice(pair)
	if err != nil {
		keeperError(c, err)
		return
	}

	if !stale {
		if err := s.prices.Set(c.Request.Context(), cache.CachedPrice{
			Pair:      pair,
			Price:     price,
			UpdatedAt: updatedAt,
		}); err != nil {
			s.logger.Error("price cache write failed", "pair", pair, "err", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"pair":       pair,
		"price":      price,
		"updated_at": updatedAt,
		"stale":      stale,
		"cached":     false,
	})
}

func (s *Server) handleGetFeeds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"feeds": s.app.OracleKeeper.GetAllFeeds()})
}

func (s *Server) handleGetReputation(c *gin.Context) {
	c.JSON(http.StatusOK, s.app.OracleKeeper.GetReputation(c.Param("reporter")))
}

func (s *Server) handleSubmitPrice(c *gin.Context) {
	var msg oracletypes.MsgSubmitPrice
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	resp, err := s.app.OracleMsgServer.SubmitPrice(c.Request.Context(), &msg)
	if err != nil {
		keeperError(c, err)
		return
	}

	// A fresh consensus invalidates whatever the cache held for the pair.
	if resp.ConsensusReached {
		if err := s.prices.Invalidate(c.Request.Context(), msg.Pair); err != nil {
			s.logger.Error("price cache invalidation failed", "pair", msg.Pair, "err", err)
		}
	}
	c.JSON(http.StatusOK, resp)
}
