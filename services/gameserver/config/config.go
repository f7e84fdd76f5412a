// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads the game service configuration from environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration.
type Config struct {
	Port string `env:"GAMESERVER_PORT" envDefault:"8089"`

	// LLMBackend selects the oracle: openai, anthropic or ollama.
	LLMBackend      string `env:"LLM_BACKEND_TYPE" envDefault:"openai"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIModel     string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL" envDefault:"claude-3-5-haiku-latest"`
	OllamaBaseURL   string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaModel     string `env:"OLLAMA_MODEL" envDefault:"llama3.1"`

	DBPath string `env:"DOUBLETALK_DB_PATH" envDefault:"data/doubletalk.db"`

	JudgeMaxAttempts        int `env:"JUDGE_MAX_ATTEMPTS" envDefault:"3"`
	ContinuationMaxAttempts int `env:"CONTINUATION_MAX_ATTEMPTS" envDefault:"2"`

	MaxReplyChars int `env:"MAX_REPLY_CHARS" envDefault:"2000"`

	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"30"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`

	// ModerationEnabled gates the OpenAI moderation check. When false,
	// or when no API key is configured, everything is allowed through.
	ModerationEnabled bool `env:"MODERATION_ENABLED" envDefault:"true"`

	// OTELEndpoint enables trace export when set.
	OTELEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
