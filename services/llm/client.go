// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package llm abstracts the generative oracle behind a small client
// interface so the game service can run against OpenAI, Ollama or a mock.
package llm

import "context"

// GenerationParams tunes a single completion call. Nil fields use the
// backend's defaults. Judge calls run cool with a large token budget;
// continuation calls run hot with a small one.
type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// Client is the standard interface for any LLM backend.
type Client interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// Float32 returns a pointer to v, for building GenerationParams literals.
func Float32(v float32) *float32 { return &v }

// Int returns a pointer to v, for building GenerationParams literals.
func Int(v int) *int { return &v }
