// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/quorumgames/doubletalk/services/gameserver/continuation"
	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
	"github.com/quorumgames/doubletalk/services/gameserver/engine"
	"github.com/quorumgames/doubletalk/services/gameserver/judge"
	"github.com/quorumgames/doubletalk/services/gameserver/observability"
)

var roundTracer = otel.Tracer("doubletalk.gameserver.handlers")

// HandleResolveRound resolves one turn via the engine and maps the error
// taxonomy to HTTP statuses: invalid input 400, moderation 403, judgment
// unavailable 502. Rate limiting (429) happens upstream in middleware and
// consumes no oracle call.
func HandleResolveRound(resolver *engine.Resolver, metrics *observability.GameMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := roundTracer.Start(c.Request.Context(), "HandleResolveRound")
		defer span.End()

		var req datatypes.ResolveRoundRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to parse the round request", "error", err)
			metrics.RoundsTotal.WithLabelValues("invalid_input").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		start := time.Now()
		result, err := resolver.ResolveRound(ctx, req)
		metrics.RoundLatencySeconds.Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			status, label := classifyRoundError(err)
			metrics.RoundsTotal.WithLabelValues(label).Inc()
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		metrics.RoundsTotal.WithLabelValues("ok").Inc()
		metrics.PointsAwarded.Observe(float64(result.Points))
		if result.GameOver {
			metrics.GameOversTotal.WithLabelValues(string(result.GameOverReason)).Inc()
		}
		c.JSON(http.StatusOK, result)
	}
}

func classifyRoundError(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrEmptyReply),
		errors.Is(err, engine.ErrReplyTooLong),
		errors.Is(err, engine.ErrInvalidSlots):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, engine.ErrModerationRejected):
		return http.StatusForbidden, "moderation_rejected"
	case errors.Is(err, judge.ErrJudgmentUnavailable):
		return http.StatusBadGateway, "judgment_unavailable"
	default:
		return http.StatusInternalServerError, "error"
	}
}

// HandleContinuations fetches each conversation's next counterpart message.
// This path never fails outward: degraded slots come back as canned text
// indistinguishable from generated flavor.
func HandleContinuations(orch *continuation.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := roundTracer.Start(c.Request.Context(), "HandleContinuations")
		defer span.End()

		var req datatypes.ContinuationsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to parse the continuations request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		messages := orch.Continue(ctx, req.Conversations)
		c.JSON(http.StatusOK, datatypes.ContinuationsResponse{Messages: messages})
	}
}
