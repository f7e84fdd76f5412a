// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIModerator checks texts with the OpenAI moderations endpoint.
type OpenAIModerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIModerator creates a moderator backed by the moderations API.
// model may be empty to use the endpoint default.
func NewOpenAIModerator(apiKey, model string) (*OpenAIModerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("moderation requires an OpenAI API key")
	}
	if model == "" {
		model = openai.ModerationOmniLatest
	}
	slog.Info("Initializing OpenAI moderator", "model", model)
	return &OpenAIModerator{client: openai.NewClient(apiKey), model: model}, nil
}

// Moderate implements Moderator. Each text is checked individually so the
// decision can name which one was flagged. Empty texts are skipped.
func (m *OpenAIModerator) Moderate(ctx context.Context, texts []string) (Decision, error) {
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		resp, err := m.client.Moderations(ctx, openai.ModerationRequest{
			Input: text,
			Model: m.model,
		})
		if err != nil {
			return Decision{}, fmt.Errorf("moderation call failed: %w", err)
		}
		for _, result := range resp.Results {
			if result.Flagged {
				slog.Warn("Moderation flagged text", "index", i)
				return Decision{
					Allowed: false,
					Reason:  fmt.Sprintf("text %d flagged by content policy", i+1),
				}, nil
			}
		}
	}
	return Decision{Allowed: true}, nil
}
