// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package continuation generates the counterpart's next message for each
// active conversation. Each slot is an independent oracle call with a small
// retry budget; all slots run concurrently, and a slot that exhausts its
// retries falls back to canned text instead of erroring. Continuations are
// cosmetic flavor, so availability wins over purity here; the judge path in
// package judge makes the opposite call.
package continuation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
	"github.com/quorumgames/doubletalk/services/llm"
)

// Config tunes the continuation orchestrator.
type Config struct {
	// MaxAttempts per slot. Deliberately smaller than the judge budget.
	MaxAttempts int

	// Temperature and MaxTokens parameterize the oracle call.
	// Continuations run hot with a small token budget.
	Temperature float32
	MaxTokens   int
}

// DefaultConfig returns the standard continuation settings.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 2,
		Temperature: 0.9,
		MaxTokens:   256,
	}
}

// Orchestrator produces counterpart continuations.
type Orchestrator struct {
	client llm.Client
	config Config

	// onFallback, when set, observes canned-text substitutions. Used to
	// bump metrics without this package importing prometheus.
	onFallback func(label datatypes.SlotLabel)
}

// NewOrchestrator creates a continuation orchestrator.
func NewOrchestrator(client llm.Client, config Config) *Orchestrator {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &Orchestrator{client: client, config: config}
}

// OnFallback registers a callback fired whenever a slot degrades to canned
// text.
func (o *Orchestrator) OnFallback(fn func(label datatypes.SlotLabel)) {
	o.onFallback = fn
}

// Continue fetches the next counterpart message for every conversation.
// All slots are requested concurrently; one slot's failure never delays or
// fails another, and this method itself never fails: on retry exhaustion a
// slot gets a tone-appropriate canned acknowledgment.
func (o *Orchestrator) Continue(ctx context.Context,
	convs []datatypes.Conversation) map[datatypes.SlotLabel]string {

	var mu sync.Mutex
	messages := make(map[datatypes.SlotLabel]string, len(convs))

	g, ctx := errgroup.WithContext(ctx)
	for _, conv := range convs {
		g.Go(func() error {
			text := o.continueOne(ctx, conv)
			mu.Lock()
			messages[conv.Label] = text
			mu.Unlock()
			return nil
		})
	}
	// Goroutines only ever return nil; the group is used for the wait and
	// the derived context.
	_ = g.Wait()

	return messages
}

func (o *Orchestrator) continueOne(ctx context.Context, conv datatypes.Conversation) string {
	prompt := buildContinuationPrompt(conv)
	params := llm.GenerationParams{
		Temperature: llm.Float32(o.config.Temperature),
		MaxTokens:   llm.Int(o.config.MaxTokens),
	}

	for attempt := 1; attempt <= o.config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			break
		}
		response, err := o.client.Generate(ctx, prompt, params)
		if err != nil {
			slog.Warn("Continuation oracle call failed",
				"slot", conv.Label, "attempt", attempt, "error", err)
			continue
		}
		text := cleanContinuation(response)
		if text != "" {
			return text
		}
		slog.Warn("Continuation response empty", "slot", conv.Label, "attempt", attempt)
	}

	slog.Info("Continuation degraded to canned text", "slot", conv.Label,
		"tone", conv.Situation.Tone)
	if o.onFallback != nil {
		o.onFallback(conv.Label)
	}
	return cannedFor(conv.Situation.Tone)
}

func buildContinuationPrompt(conv datatypes.Conversation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s.\n", conv.Situation.CounterpartName,
		conv.Situation.CounterpartContext)
	fmt.Fprintf(&b, "You are having a %s conversation about %s.\n",
		conv.Situation.Tone, conv.Situation.Topic)
	for _, fact := range conv.Situation.Facts {
		fmt.Fprintf(&b, "Background: %s\n", fact)
	}
	b.WriteString("\nConversation so far:\n")
	for _, msg := range conv.Transcript {
		speaker := conv.Situation.CounterpartName
		if msg.Role == datatypes.RolePlayer {
			speaker = "Them"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, msg.Text)
	}
	fmt.Fprintf(&b, "\nWrite your next message as %s. Stay in character, keep the %s tone, and keep it short (one to three sentences). Output only the message text, nothing else.\n",
		conv.Situation.CounterpartName, conv.Situation.Tone)
	return b.String()
}

// cleanContinuation strips quotes and speaker prefixes models like to add.
func cleanContinuation(response string) string {
	text := strings.TrimSpace(response)
	text = strings.Trim(text, "\"")
	if idx := strings.Index(text, ":"); idx > 0 && idx < 30 && !strings.ContainsAny(text[:idx], ".!?") {
		text = strings.TrimSpace(text[idx+1:])
	}
	return text
}
