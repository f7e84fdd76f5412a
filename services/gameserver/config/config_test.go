// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8089", cfg.Port)
	assert.Equal(t, "openai", cfg.LLMBackend)
	assert.Equal(t, 3, cfg.JudgeMaxAttempts)
	assert.Equal(t, 2, cfg.ContinuationMaxAttempts)
	assert.Equal(t, 2000, cfg.MaxReplyChars)
	assert.Equal(t, 30, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.True(t, cfg.ModerationEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GAMESERVER_PORT", "9000")
	t.Setenv("LLM_BACKEND_TYPE", "ollama")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("MODERATION_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "ollama", cfg.LLMBackend)
	assert.Equal(t, 5, cfg.RateLimitRequests)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.False(t, cfg.ModerationEnabled)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}
