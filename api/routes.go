package api

// registerRoutes registers all API routes. Reads are public; writes
// require a session token.
func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.handleRegister)
			auth.POST("/login", s.handleLogin)
		}

		bank := api.Group("/bank")
		{
			bank.GET("/balances/:address", s.handleGetBalances)
		}

		amm := api.Group("/amm")
		{
			amm.GET("/pools", s.handleGetPools)
			amm.GET("/pools/:pool_id", s.handleGetPool)
			amm.GET("/pools/:pool_id/quote", s.handleGetQuote)
			amm.GET("/pools/:pool_id/price", s.handleGetSpotPrice)

			protected := amm.Group("")
			protected.Use(s.AuthMiddleware())
			{
				protected.POST("/pools", s.handleCreatePool)
				protected.POST("/add-liquidity", s.handleAddLiquidity)
				protected.POST("/remove-liquidity", s.handleRemoveLiquidity)
				protected.POST("/swap", s.handleSwap)
			}
		}

		curve := api.Group("/curve")
		{
			curve.GET("/assets", s.handleGetAssets)
			curve.GET("/assets/:denom", s.handleGetAsset)
			curve.GET("/assets/:denom/price", s.handleGetAssetPrice)

			protected := curve.Group("")
			protected.Use(s.AuthMiddleware())
			{
				protected.POST("/assets", s.handleCreateAsset)
				protected.POST("/buy", s.handleCurveBuy)
				protected.POST("/sell", s.handleCurveSell)
				protected.POST("/raise-floor", s.handleRaisePriceFloor)
			}
		}

		oracle := api.Group("/oracle")
		{
			oracle.GET("/price", s.handleGetOraclePrice)
			oracle.GET("/feeds", s.handleGetFeeds)
			oracle.GET("/reputation/:reporter", s.handleGetReputation)

			protected := oracle.Group("")
			protected.Use(s.AuthMiddleware())
			{
				protected.POST("/submit", s.handleSubmitPrice)
			}
		}

		registry := api.Group("/registry")
		{
			registry.GET("/agents", s.handleGetAgents)
			registry.GET("/agents/:address", s.handleGetAgent)
			registry.GET("/agents/:address/budget", s.handleGetAgentBudget)

			protected := registry.Group("")
			protected.Use(s.AuthMiddleware())
			{
				protected.POST("/agents", s.handleRegisterAgent)
				protected.PUT("/agents/:address/active", s.handleSetAgentActive)
			}
		}

		api.GET("/events", s.handleGetEvents)
	}
}
