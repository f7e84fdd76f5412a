// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
)

func TestSaveScore(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})

	body, err := json.Marshal(datatypes.SaveScoreRequest{
		Player: "ana", Points: 730, Rounds: 4, Slots: 2,
	})
	require.NoError(t, err)

	w := postJSON(router, "/v1/scores", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var entry datatypes.ScoreEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "ana", entry.Player)
	assert.Equal(t, 730, entry.Points)
	assert.NotEmpty(t, entry.CreatedAt)
}

func TestSaveScore_InvalidBody(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})

	// Slots outside [2, 3] fails binding.
	body, err := json.Marshal(datatypes.SaveScoreRequest{
		Player: "ana", Points: 100, Rounds: 1, Slots: 9,
	})
	require.NoError(t, err)

	w := postJSON(router, "/v1/scores", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTopScores(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})

	for _, sc := range []struct {
		player string
		points int
	}{
		{"ana", 730},
		{"kai", 1240},
		{"mo", 480},
	} {
		body, err := json.Marshal(datatypes.SaveScoreRequest{
			Player: sc.player, Points: sc.points, Rounds: 5, Slots: 2,
		})
		require.NoError(t, err)
		w := postJSON(router, "/v1/scores", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := getPath(router, "/v1/scores/top?limit=2")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Scores []datatypes.ScoreEntry `json:"scores"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Scores, 2)
	assert.Equal(t, "kai", resp.Scores[0].Player)
	assert.Equal(t, "ana", resp.Scores[1].Player)
}

func TestTopScores_InvalidLimit(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})

	w := getPath(router, "/v1/scores/top?limit=zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = getPath(router, "/v1/scores/top?limit=-3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
