package api

import (
	"net/http"
	"strconv"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"

	ammtypes "github.com/thryx-chain/thryx/x/amm/types"
	curvetypes "github.com/thryx-chain/thryx/x/curve/types"
	oracletypes "github.com/thryx-chain/thryx/x/oracle/types"
	registrytypes "github.com/thryx-chain/thryx/x/registry/types"
)

// keeperError maps module errors onto HTTP statuses.
func keeperError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.IsOf(err,
		ammtypes.ErrPoolNotFound,
		curvetypes.ErrAssetNotFound,
		oracletypes.ErrPriceNotFound,
		registrytypes.ErrAgentNotFound):
		status = http.StatusNotFound
	case errors.IsOf(err, oracletypes.ErrUnauthorized, curvetypes.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.IsOf(err, oracletypes.ErrDuplicateSubmission, registrytypes.ErrAgentAlreadyExists,
		ammtypes.ErrPoolAlreadyExists, curvetypes.ErrAssetAlreadyExists):
		status = http.StatusConflict
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func poolIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("pool_id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pool id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleGetPools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pools": s.app.AMMKeeper.GetAllPools()})
}

func (s *Server) handleGetPool(c *gin.Context) {
	id, ok := poolIDParam(c)
	if !ok {
		return
	}
	pool, err := s.app.AMMKeeper.GetPool(id)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, pool)
}

func (s *Server) handleGetQuote(c *gin.Context) {
	id, ok := poolIDParam(c)
	if !ok {
		return
	}
	amountIn, ok := math.NewIntFromString(c.Query("amount_in"))
	if !ok || !amountIn.IsPositive() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount_in must be a positive integer"})
		return
	}
	out, err := s.app.AMMKeeper.GetAmountOut(id, c.Query("token_in"), amountIn)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount_out": out})
}

func (s *Server) handleGetSpotPrice(c *gin.Context) {
	id, ok := poolIDParam(c)
	if !ok {
		return
	}
	price, err := s.app.AMMKeeper.GetSpotPrice(id, c.Query("token_in"))
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}

func (s *Server) handleCreatePool(c *gin.Context) {
	var msg ammtypes.MsgCreatePool
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	resp, err := s.app.AMMMsgServer.CreatePool(c.Request.Context(), &msg)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleAddLiquidity(c *gin.Context) {
	var msg ammtypes.MsgAddLiquidity
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	resp, err := s.app.AMMMsgServer.AddLiquidity(c.Request.Context(), &msg)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRemoveLiquidity(c *gin.Context) {
	var msg ammtypes.MsgRemoveLiquidity
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	resp, err := s.app.AMMMsgServer.RemoveLiquidity(c.Request.Context(), &msg)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSwap(c *gin.Context) {
	var msg ammtypes.MsgSwap
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	resp, err := s.app.AMMMsgServer.Swap(c.Request.Context(), &msg)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
