// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command gameserver starts the doubletalk game HTTP server.
//
// Configuration is read from environment variables (see package config);
// a .env file in the working directory is loaded first when present.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/quorumgames/doubletalk/services/gameserver/config"
	"github.com/quorumgames/doubletalk/services/gameserver/continuation"
	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
	"github.com/quorumgames/doubletalk/services/gameserver/engine"
	"github.com/quorumgames/doubletalk/services/gameserver/judge"
	"github.com/quorumgames/doubletalk/services/gameserver/middleware"
	"github.com/quorumgames/doubletalk/services/gameserver/moderation"
	"github.com/quorumgames/doubletalk/services/gameserver/observability"
	"github.com/quorumgames/doubletalk/services/gameserver/routes"
	"github.com/quorumgames/doubletalk/services/gameserver/store"
	"github.com/quorumgames/doubletalk/services/llm"
)

func initTracer(endpoint string) (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("doubletalk-gameserver")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

func newOracleClient(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMBackend {
	case "ollama":
		slog.Info("Using Ollama LLM backend")
		return llm.NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel)
	case "anthropic":
		slog.Info("Using Anthropic LLM backend")
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case "openai":
		slog.Info("Using OpenAI LLM backend")
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		slog.Warn("LLM_BACKEND_TYPE not set or invalid, defaulting to openai",
			"value", cfg.LLMBackend)
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
}

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded configuration from .env")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: could not load configuration: %v", err)
	}

	if cfg.OTELEndpoint != "" {
		cleanup, err := initTracer(cfg.OTELEndpoint)
		if err != nil {
			log.Fatalf("failed to setup the OTLP tracer: %v", err)
		}
		defer cleanup(context.Background())
	} else {
		slog.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, trace export disabled")
	}

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("FATAL: could not open the store: %v", err)
	}
	defer st.Close()
	if err := st.Seed(context.Background()); err != nil {
		log.Fatalf("FATAL: could not seed scenarios: %v", err)
	}

	oracle, err := newOracleClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	var moderator moderation.Moderator = moderation.AllowAll{}
	if cfg.ModerationEnabled && cfg.OpenAIAPIKey != "" {
		m, err := moderation.NewOpenAIModerator(cfg.OpenAIAPIKey, "")
		if err != nil {
			log.Fatalf("Failed to initialize moderator: %v", err)
		}
		moderator = m
	} else {
		slog.Warn("Moderation disabled, all content allowed through")
	}

	metrics := observability.NewGameMetrics(prometheus.DefaultRegisterer)

	judgeOrch := judge.NewOrchestrator(oracle, judge.Config{
		MaxAttempts: cfg.JudgeMaxAttempts,
		Temperature: judge.DefaultConfig().Temperature,
		MaxTokens:   judge.DefaultConfig().MaxTokens,
	})
	contOrch := continuation.NewOrchestrator(oracle, continuation.Config{
		MaxAttempts: cfg.ContinuationMaxAttempts,
		Temperature: continuation.DefaultConfig().Temperature,
		MaxTokens:   continuation.DefaultConfig().MaxTokens,
	})
	contOrch.OnFallback(func(label datatypes.SlotLabel) {
		metrics.ContinuationFallbacksTotal.WithLabelValues(string(label)).Inc()
	})

	resolver := engine.NewResolver(judgeOrch, moderator, cfg.MaxReplyChars)

	limiter := middleware.NewClientLimiter(cfg.RateLimitRequests,
		cfg.RateLimitWindow, cfg.RateLimitWindow)
	defer limiter.Close()

	router := gin.Default()
	router.Use(otelgin.Middleware("doubletalk-gameserver"))
	routes.SetupRoutes(router, routes.Deps{
		Resolver:     resolver,
		Continuation: contOrch,
		Store:        st,
		Moderator:    moderator,
		Limiter:      limiter,
		Metrics:      metrics,
	})

	slog.Info("Starting the gameserver", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
