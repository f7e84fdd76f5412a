// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package store persists scenarios and the score leaderboard in SQLite.
// Round resolution itself never touches the store; these are the "save
// score" and "load scenario" collaborator calls the game client makes
// around a session.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
)

// Store wraps a SQLite connection.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database and runs migrations.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("store: mkdir %s: %w", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}

	// Single connection avoids write contention for our scale
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS situations (
			id                  TEXT PRIMARY KEY,
			topic               TEXT NOT NULL,
			tone                TEXT NOT NULL,
			intent              TEXT NOT NULL,
			counterpart_name    TEXT NOT NULL,
			counterpart_context TEXT NOT NULL,
			facts               TEXT NOT NULL DEFAULT '[]',
			opening_messages    TEXT NOT NULL DEFAULT '[]',
			created_at          TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS scores (
			id         TEXT PRIMARY KEY,
			player     TEXT    NOT NULL,
			points     INTEGER NOT NULL,
			rounds     INTEGER NOT NULL,
			slots      INTEGER NOT NULL,
			created_at TEXT    NOT NULL DEFAULT (datetime('now'))
		);
		CREATE INDEX IF NOT EXISTS idx_scores_points ON scores(points DESC);
	`)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSituation inserts a scenario and returns it with its assigned ID.
func (s *Store) CreateSituation(ctx context.Context, sit datatypes.Situation) (datatypes.Situation, error) {
	if sit.ID == "" {
		sit.ID = uuid.NewString()
	}
	facts, err := json.Marshal(sit.Facts)
	if err != nil {
		return datatypes.Situation{}, fmt.Errorf("store: marshal facts: %w", err)
	}
	openings, err := json.Marshal(sit.OpeningMessages)
	if err != nil {
		return datatypes.Situation{}, fmt.Errorf("store: marshal openings: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO situations (id, topic, tone, intent, counterpart_name, counterpart_context, facts, opening_messages)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sit.ID, sit.Topic, sit.Tone, sit.Intent,
		sit.CounterpartName, sit.CounterpartContext, string(facts), string(openings))
	if err != nil {
		return datatypes.Situation{}, fmt.Errorf("store: insert situation: %w", err)
	}
	return sit, nil
}

// GetSituation loads one scenario by ID. Returns sql.ErrNoRows when absent.
func (s *Store) GetSituation(ctx context.Context, id string) (datatypes.Situation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, topic, tone, intent, counterpart_name, counterpart_context, facts, opening_messages
		FROM situations WHERE id = ?`, id)
	return scanSituation(row)
}

// ListSituations returns all scenarios, oldest first.
func (s *Store) ListSituations(ctx context.Context) ([]datatypes.Situation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, topic, tone, intent, counterpart_name, counterpart_context, facts, opening_messages
		FROM situations ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list situations: %w", err)
	}
	defer rows.Close()

	var out []datatypes.Situation
	for rows.Next() {
		sit, err := scanSituation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sit)
	}
	return out, rows.Err()
}

// CountSituations reports how many scenarios exist.
func (s *Store) CountSituations(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM situations`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("store: count situations: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSituation(row rowScanner) (datatypes.Situation, error) {
	var sit datatypes.Situation
	var facts, openings string
	err := row.Scan(&sit.ID, &sit.Topic, &sit.Tone, &sit.Intent,
		&sit.CounterpartName, &sit.CounterpartContext, &facts, &openings)
	if err != nil {
		return datatypes.Situation{}, err
	}
	if err := json.Unmarshal([]byte(facts), &sit.Facts); err != nil {
		return datatypes.Situation{}, fmt.Errorf("store: decode facts: %w", err)
	}
	if err := json.Unmarshal([]byte(openings), &sit.OpeningMessages); err != nil {
		return datatypes.Situation{}, fmt.Errorf("store: decode openings: %w", err)
	}
	return sit, nil
}

// SaveScore records a finished game and returns the leaderboard entry.
func (s *Store) SaveScore(ctx context.Context, req datatypes.SaveScoreRequest) (datatypes.ScoreEntry, error) {
	entry := datatypes.ScoreEntry{
		ID:        uuid.NewString(),
		Player:    req.Player,
		Points:    req.Points,
		Rounds:    req.Rounds,
		Slots:     req.Slots,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scores (id, player, points, rounds, slots, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Player, entry.Points, entry.Rounds, entry.Slots, entry.CreatedAt)
	if err != nil {
		return datatypes.ScoreEntry{}, fmt.Errorf("store: insert score: %w", err)
	}
	return entry, nil
}

// TopScores returns the highest-scoring entries, best first.
func (s *Store) TopScores(ctx context.Context, limit int) ([]datatypes.ScoreEntry, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player, points, rounds, slots, created_at
		FROM scores ORDER BY points DESC, created_at LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: top scores: %w", err)
	}
	defer rows.Close()

	var out []datatypes.ScoreEntry
	for rows.Next() {
		var e datatypes.ScoreEntry
		if err := rows.Scan(&e.ID, &e.Player, &e.Points, &e.Rounds, &e.Slots, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
