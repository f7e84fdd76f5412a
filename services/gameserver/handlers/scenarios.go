// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
	"github.com/quorumgames/doubletalk/services/gameserver/moderation"
	"github.com/quorumgames/doubletalk/services/gameserver/store"
)

// ListScenarios returns all playable scenarios.
func ListScenarios(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		situations, err := st.ListSituations(c.Request.Context())
		if err != nil {
			slog.Error("Failed to list scenarios", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list scenarios"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"scenarios": situations})
	}
}

// GetScenario loads one scenario by ID.
func GetScenario(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		sit, err := st.GetSituation(c.Request.Context(), id)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scenario not found"})
			return
		}
		if err != nil {
			slog.Error("Failed to load scenario", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load scenario"})
			return
		}
		c.JSON(http.StatusOK, sit)
	}
}

// CreateScenario authors a new scenario. All author-supplied text passes
// the moderation check before anything is stored.
func CreateScenario(st *store.Store, moderator moderation.Moderator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.CreateScenarioRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Error("Failed to parse the scenario request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		texts := []string{req.Topic, req.Tone, req.Intent, req.CounterpartName, req.CounterpartContext}
		texts = append(texts, req.Facts...)
		texts = append(texts, req.OpeningMessages...)
		decision, err := moderator.Moderate(c.Request.Context(), texts)
		if err != nil {
			slog.Error("Moderation check failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "moderation check failed"})
			return
		}
		if !decision.Allowed {
			slog.Warn("Scenario rejected by moderation", "reason", decision.Reason)
			c.JSON(http.StatusForbidden, gin.H{"error": "scenario rejected by moderation", "reason": decision.Reason})
			return
		}

		sit, err := st.CreateSituation(c.Request.Context(), datatypes.Situation{
			Topic:              req.Topic,
			Tone:               req.Tone,
			Intent:             req.Intent,
			CounterpartName:    req.CounterpartName,
			CounterpartContext: req.CounterpartContext,
			Facts:              req.Facts,
			OpeningMessages:    req.OpeningMessages,
		})
		if err != nil {
			slog.Error("Failed to create scenario", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create scenario"})
			return
		}
		c.JSON(http.StatusCreated, sit)
	}
}
