// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package judge asks the oracle to score a player reply against every
// active conversation in one call, with bounded retries and strict schema
// validation. Judgments are the single source of truth for confusion and
// score state, so this path fails loud: after the retry budget is spent it
// returns ErrJudgmentUnavailable rather than fabricating scores. Contrast
// with package continuation, which fails quiet.
package judge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
	"github.com/quorumgames/doubletalk/services/llm"
)

var tracer = otel.Tracer("doubletalk.gameserver.judge")

// ErrJudgmentUnavailable means the oracle judge call exhausted its retries
// or repeatedly returned unparseable output.
var ErrJudgmentUnavailable = errors.New("judgment unavailable")

// Config tunes the judge orchestrator.
type Config struct {
	// MaxAttempts is the retry budget. Minimum 1.
	MaxAttempts int

	// Temperature and MaxTokens parameterize the oracle call. Judging
	// runs cool with a large token budget.
	Temperature float32
	MaxTokens   int
}

// DefaultConfig returns the standard judge settings.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		Temperature: 0.2,
		MaxTokens:   1024,
	}
}

// Orchestrator runs the judge oracle call for a turn.
type Orchestrator struct {
	client llm.Client
	config Config
}

// NewOrchestrator creates a judge orchestrator. A MaxAttempts below 1 is
// raised to 1.
func NewOrchestrator(client llm.Client, config Config) *Orchestrator {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &Orchestrator{client: client, config: config}
}

// Judge scores the player reply against every conversation in one oracle
// request. On each attempt the raw response goes through the two-stage JSON
// extraction and the schema validator; the first valid judgment is returned
// immediately. Invalid output and transport errors are logged and retried
// up to the budget, after which the error wraps ErrJudgmentUnavailable.
func (o *Orchestrator) Judge(ctx context.Context, convs []datatypes.Conversation,
	playerReply string) (datatypes.JudgmentResult, error) {

	ctx, span := tracer.Start(ctx, "judge.Judge")
	defer span.End()
	span.SetAttributes(attribute.Int("judge.slots", len(convs)))

	labels := make([]datatypes.SlotLabel, 0, len(convs))
	for _, conv := range convs {
		labels = append(labels, conv.Label)
	}
	prompt := BuildJudgePrompt(convs, playerReply)
	params := llm.GenerationParams{
		Temperature: llm.Float32(o.config.Temperature),
		MaxTokens:   llm.Int(o.config.MaxTokens),
	}

	var lastErr error
	for attempt := 1; attempt <= o.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("%w: %w", ErrJudgmentUnavailable, err)
		}

		response, err := o.client.Generate(ctx, prompt, params)
		if err != nil {
			lastErr = err
			slog.Warn("Judge oracle call failed", "attempt", attempt, "error", err)
			continue
		}

		payload, ok := ExtractJSONObject(response)
		if !ok {
			lastErr = fmt.Errorf("no JSON object in oracle response")
			slog.Warn("Judge response unparseable", "attempt", attempt)
			continue
		}

		judgment, err := ParseJudgment(payload, labels)
		if err != nil {
			lastErr = err
			slog.Warn("Judge response failed validation", "attempt", attempt, "error", err)
			continue
		}

		span.SetAttributes(attribute.Int("judge.attempts", attempt))
		return judgment, nil
	}

	err := fmt.Errorf("%w after %d attempts: %w", ErrJudgmentUnavailable,
		o.config.MaxAttempts, lastErr)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	slog.Error("Judge retry budget exhausted", "attempts", o.config.MaxAttempts, "error", lastErr)
	return nil, err
}
