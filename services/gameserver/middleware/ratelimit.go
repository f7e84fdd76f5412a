// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package middleware provides HTTP middleware for the game service.
package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ClientLimiter is a per-client fixed-window request counter. It is an
// explicitly owned store with a defined lifecycle: construct it at process
// start, let the sweeper evict expired windows, and Close it on shutdown.
// A rejected request consumes no oracle call.
//
// Thread Safety: safe for concurrent use.
type ClientLimiter struct {
	mu      sync.Mutex
	windows map[string]*clientWindow

	limit  int
	window time.Duration

	sweepEvery time.Duration
	done       chan struct{}
	closeOnce  sync.Once
}

type clientWindow struct {
	start time.Time
	count int
}

// NewClientLimiter creates a limiter allowing limit requests per window per
// client key and starts the background sweeper.
func NewClientLimiter(limit int, window, sweepEvery time.Duration) *ClientLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if sweepEvery <= 0 {
		sweepEvery = window
	}
	l := &ClientLimiter{
		windows:    make(map[string]*clientWindow),
		limit:      limit,
		window:     window,
		sweepEvery: sweepEvery,
		done:       make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

// Allow records a request for key at time now and reports whether it fits
// in the current window. The window resets once its duration has elapsed.
func (l *ClientLimiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[key] = &clientWindow{start: now, count: 1}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Close stops the sweeper. Safe to call more than once.
func (l *ClientLimiter) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

func (l *ClientLimiter) sweepLoop() {
	ticker := time.NewTicker(l.sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case now := <-ticker.C:
			l.sweep(now)
		}
	}
}

func (l *ClientLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
		}
	}
}

// tracked returns the number of live windows. Test hook.
func (l *ClientLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// RateLimit rejects requests over the client's budget with 429 before any
// handler work happens. The client key is the X-Client-ID header when
// present, else the remote IP.
func RateLimit(limiter *ClientLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Client-ID")
		if key == "" {
			key = c.ClientIP()
		}
		if !limiter.Allow(key, time.Now()) {
			slog.Warn("Rate limit exceeded", "client", key)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded, try again later",
			})
			return
		}
		c.Next()
	}
}
