// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
	"github.com/quorumgames/doubletalk/services/gameserver/store"
)

// SaveScore records a finished game on the leaderboard.
func SaveScore(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.SaveScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Error("Failed to parse the score request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		entry, err := st.SaveScore(c.Request.Context(), req)
		if err != nil {
			slog.Error("Failed to save score", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save score"})
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// TopScores returns the leaderboard, best first. Accepts an optional
// ?limit= query parameter (default 20, max 100).
func TopScores(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 20
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			limit = parsed
		}
		if limit > 100 {
			limit = 100
		}
		entries, err := st.TopScores(c.Request.Context(), limit)
		if err != nil {
			slog.Error("Failed to load leaderboard", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"scores": entries})
	}
}
