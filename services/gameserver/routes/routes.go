// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quorumgames/doubletalk/services/gameserver/continuation"
	"github.com/quorumgames/doubletalk/services/gameserver/engine"
	"github.com/quorumgames/doubletalk/services/gameserver/handlers"
	"github.com/quorumgames/doubletalk/services/gameserver/middleware"
	"github.com/quorumgames/doubletalk/services/gameserver/moderation"
	"github.com/quorumgames/doubletalk/services/gameserver/observability"
	"github.com/quorumgames/doubletalk/services/gameserver/store"
)

// Deps bundles the collaborators the routes need.
type Deps struct {
	Resolver     *engine.Resolver
	Continuation *continuation.Orchestrator
	Store        *store.Store
	Moderator    moderation.Moderator
	Limiter      *middleware.ClientLimiter
	Metrics      *observability.GameMetrics
}

// SetupRoutes registers all endpoints.
func SetupRoutes(router *gin.Engine, deps Deps) {
	registerValidators()

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	v1.Use(middleware.RateLimit(deps.Limiter))
	{
		rounds := v1.Group("/rounds")
		{
			rounds.POST("/resolve", handlers.HandleResolveRound(deps.Resolver, deps.Metrics))
			rounds.POST("/continuations", handlers.HandleContinuations(deps.Continuation))
		}

		scenarios := v1.Group("/scenarios")
		{
			scenarios.GET("", handlers.ListScenarios(deps.Store))
			scenarios.GET("/:id", handlers.GetScenario(deps.Store))
			scenarios.POST("", handlers.CreateScenario(deps.Store, deps.Moderator))
		}

		scores := v1.Group("/scores")
		{
			scores.POST("", handlers.SaveScore(deps.Store))
			scores.GET("/top", handlers.TopScores(deps.Store))
		}
	}
}
