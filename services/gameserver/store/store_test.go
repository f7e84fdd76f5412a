// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "doubletalk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetSituation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateSituation(ctx, datatypes.Situation{
		Topic:              "a borrowed lawnmower",
		Tone:               "friendly",
		Intent:             "get it back without a fight",
		CounterpartName:    "Pat",
		CounterpartContext: "your next-door neighbor",
		Facts:              []string{"Borrowed three weeks ago."},
		OpeningMessages:    []string{"Hey! Beautiful day, huh?"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := s.GetSituation(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateSituation_KeepsProvidedID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateSituation(ctx, datatypes.Situation{
		ID: "my-scenario", Topic: "t", Tone: "casual", Intent: "i",
		CounterpartName: "n", CounterpartContext: "c",
	})
	require.NoError(t, err)
	assert.Equal(t, "my-scenario", created.ID)
}

func TestGetSituation_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSituation(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListAndCountSituations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.CountSituations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, id := range []string{"one", "two", "three"} {
		_, err := s.CreateSituation(ctx, datatypes.Situation{
			ID: id, Topic: "t", Tone: "casual", Intent: "i",
			CounterpartName: "n", CounterpartContext: "c",
		})
		require.NoError(t, err)
	}

	all, err := s.ListSituations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err = s.CountSituations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSeed_OnlyWhenEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))
	n, err := s.CountSituations(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(builtinSituations), n)

	// A second seed must not duplicate anything.
	require.NoError(t, s.Seed(ctx))
	n, err = s.CountSituations(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(builtinSituations), n)
}

func TestSaveScoreAndTopScores(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, sc := range []struct {
		player string
		points int
	}{
		{"ana", 730},
		{"kai", 1240},
		{"mo", 480},
	} {
		entry, err := s.SaveScore(ctx, datatypes.SaveScoreRequest{
			Player: sc.player, Points: sc.points, Rounds: 4, Slots: 2,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
		assert.NotEmpty(t, entry.CreatedAt)
	}

	top, err := s.TopScores(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "kai", top[0].Player)
	assert.Equal(t, 1240, top[0].Points)
	assert.Equal(t, "ana", top[1].Player)
}

func TestTopScores_DefaultLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveScore(ctx, datatypes.SaveScoreRequest{Player: "ana", Points: 100, Rounds: 1, Slots: 2})
	require.NoError(t, err)

	top, err := s.TopScores(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}
