// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
	"github.com/quorumgames/doubletalk/services/gameserver/moderation"
)

var tracer = otel.Tracer("doubletalk.gameserver.engine")

// Judge scores a reply against every active conversation. Implemented by
// judge.Orchestrator; mocked in tests.
type Judge interface {
	Judge(ctx context.Context, convs []datatypes.Conversation, playerReply string) (datatypes.JudgmentResult, error)
}

// Resolver sequences one turn: input checks, moderation, judging, confusion
// deltas, game-over evaluation and scoring. Continuations are not part of
// the sequence; they run independently since they never affect the result.
type Resolver struct {
	judge         Judge
	moderator     moderation.Moderator
	maxReplyChars int
}

// NewResolver wires a resolver. maxReplyChars below 1 disables the length
// check.
func NewResolver(judge Judge, moderator moderation.Moderator, maxReplyChars int) *Resolver {
	if moderator == nil {
		moderator = moderation.AllowAll{}
	}
	return &Resolver{
		judge:         judge,
		moderator:     moderator,
		maxReplyChars: maxReplyChars,
	}
}

// ResolveRound resolves one turn. On any returned error no game state has
// changed; in particular a judge failure surfaces as an error wrapping
// judge.ErrJudgmentUnavailable and the caller decides whether to retry the
// turn unconsumed or apply its own neutral fallback.
func (r *Resolver) ResolveRound(ctx context.Context,
	req datatypes.ResolveRoundRequest) (*datatypes.RoundResult, error) {

	ctx, span := tracer.Start(ctx, "engine.ResolveRound")
	defer span.End()
	span.SetAttributes(
		attribute.Int("round.number", req.RoundNumber),
		attribute.Int("round.slots", len(req.Conversations)),
	)

	labels, err := validateSlots(req.Conversations)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.PlayerReply) == "" {
		return nil, ErrEmptyReply
	}
	if r.maxReplyChars > 0 && utf8.RuneCountInString(req.PlayerReply) > r.maxReplyChars {
		return nil, fmt.Errorf("%w (%d chars, limit %d)", ErrReplyTooLong,
			utf8.RuneCountInString(req.PlayerReply), r.maxReplyChars)
	}

	decision, err := r.moderator.Moderate(ctx, []string{req.PlayerReply})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("moderation check failed: %w", err)
	}
	if !decision.Allowed {
		slog.Warn("Reply rejected by moderation", "reason", decision.Reason)
		return nil, fmt.Errorf("%w: %s", ErrModerationRejected, decision.Reason)
	}

	judgment, err := r.judge.Judge(ctx, req.Conversations, req.PlayerReply)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	deltas := ConfusionDeltas(judgment)
	newConfusion := make(map[datatypes.SlotLabel]int, len(labels))
	for _, conv := range req.Conversations {
		newConfusion[conv.Label] = ClampConfusion(conv.Confusion + deltas[conv.Label])
	}

	verdict := EvaluateGameOver(labels, newConfusion)

	points := Points(judgment, req.RoundNumber)
	if verdict.GameOver {
		points = 0
	}

	result := &datatypes.RoundResult{
		Judgment:       judgment,
		Deltas:         deltas,
		Points:         points,
		GameOver:       verdict.GameOver,
		GameOverReason: verdict.Reason,
	}
	for _, label := range labels {
		result.SetNewConfusion(label, newConfusion[label])
	}

	slog.Info("Round resolved",
		"round", req.RoundNumber,
		"points", points,
		"game_over", verdict.GameOver,
		"reason", string(verdict.Reason))
	return result, nil
}

// validateSlots checks the conversations are labeled A, B and optionally C
// in priority order and returns the active labels.
func validateSlots(convs []datatypes.Conversation) ([]datatypes.SlotLabel, error) {
	if len(convs) < datatypes.MinSlots || len(convs) > datatypes.MaxSlots {
		return nil, ErrInvalidSlots
	}
	expected := datatypes.ActiveLabels(len(convs))
	labels := make([]datatypes.SlotLabel, 0, len(convs))
	for i, conv := range convs {
		if conv.Label != expected[i] {
			return nil, ErrInvalidSlots
		}
		labels = append(labels, conv.Label)
	}
	return labels, nil
}
