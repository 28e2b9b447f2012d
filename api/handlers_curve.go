package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	curvetypes "github.com/thryx-chain/thryx/x/curve/types"
)

func (s *Server) handleGetAssets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"assets": s.app.CurveKeeper.GetAllAssets()})
}

func (s *Server) handleGetAsset(c *gin.Context) {
	asset, err := s.app.CurveKeeper.GetAsset(c.Param("denom"))
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (s *Server) handleGetAssetPrice(c *gin.Context) {
	denom := c.Param("denom")
	price, err := s.app.CurveKeeper.CurrentPrice(denom)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"denom": denom, "price": price})
}

func (s *Server) handleCreateAsset(c *gin.Context) {
	var msg curvetypes.MsgCreateAsset
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	resp, err := s.app.CurveMsgServer.CreateAsset(c.Request.Context(), &msg)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleCurveBuy(c *gin.Context) {
	var msg curvetypes.MsgBuy
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	resp, err := s.app.CurveMsgServer.Buy(c.Request.Context(), &msg)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCurveSell(c *gin.Context) {
	var msg curvetypes.MsgSell
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	resp, err := s.app.CurveMsgServer.Sell(c.Request.Context(), &msg)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRaisePriceFloor(c *gin.Context) {
	var msg curvetypes.MsgRaisePriceFloor
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	resp, err := s.app.CurveMsgServer.RaisePriceFloor(c.Request.Context(), &msg)
	if err != nil {
		keeperError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
