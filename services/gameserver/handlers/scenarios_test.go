// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
	"github.com/quorumgames/doubletalk/services/gameserver/moderation"
)

func getPath(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestListScenarios_Seeded(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{seed: true})

	w := getPath(router, "/v1/scenarios")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Scenarios []datatypes.Situation `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Scenarios)
	for _, sit := range resp.Scenarios {
		assert.NotEmpty(t, sit.ID)
		assert.NotEmpty(t, sit.Topic)
		assert.NotEmpty(t, sit.OpeningMessages)
	}
}

func TestGetScenario(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{seed: true})

	w := getPath(router, "/v1/scenarios/landlord-leak")
	require.Equal(t, http.StatusOK, w.Code)

	var sit datatypes.Situation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sit))
	assert.Equal(t, "landlord-leak", sit.ID)
	assert.Equal(t, "formal", sit.Tone)
}

func TestGetScenario_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{seed: true})

	w := getPath(router, "/v1/scenarios/does-not-exist")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func validScenarioRequest() datatypes.CreateScenarioRequest {
	return datatypes.CreateScenarioRequest{
		Topic:              "returning a borrowed ladder",
		Tone:               "friendly",
		Intent:             "get the ladder back this week",
		CounterpartName:    "Pat",
		CounterpartContext: "your next-door neighbor, chatty",
		Facts:              []string{"The ladder was borrowed a month ago."},
		OpeningMessages:    []string{"Hey neighbor! Gorgeous weekend, right?"},
	}
}

func TestCreateScenario(t *testing.T) {
	router, st := newTestRouter(t, routerOptions{})

	body, err := json.Marshal(validScenarioRequest())
	require.NoError(t, err)

	w := postJSON(router, "/v1/scenarios", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created datatypes.Situation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "returning a borrowed ladder", created.Topic)

	stored, err := st.GetSituation(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
}

func TestCreateScenario_InvalidBody(t *testing.T) {
	router, _ := newTestRouter(t, routerOptions{})

	req := validScenarioRequest()
	req.OpeningMessages = nil
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := postJSON(router, "/v1/scenarios", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateScenario_ModerationRejected(t *testing.T) {
	router, st := newTestRouter(t, routerOptions{moderator: denyAll{}})

	body, err := json.Marshal(validScenarioRequest())
	require.NoError(t, err)

	w := postJSON(router, "/v1/scenarios", body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Nothing reaches the store on rejection.
	n, err := st.CountSituations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// denyKeyword rejects any batch containing the keyword. Implements
// moderation.Moderator.
type denyKeyword struct {
	keyword string
}

func (d denyKeyword) Moderate(ctx context.Context, texts []string) (moderation.Decision, error) {
	for _, text := range texts {
		if strings.Contains(text, d.keyword) {
			return moderation.Decision{Allowed: false, Reason: "flagged keyword"}, nil
		}
	}
	return moderation.Decision{Allowed: true}, nil
}

func TestCreateScenario_EveryFieldModerated(t *testing.T) {
	base := validScenarioRequest()
	mutations := map[string]func(*datatypes.CreateScenarioRequest){
		"topic":               func(r *datatypes.CreateScenarioRequest) { r.Topic = "hostile slur topic" },
		"tone":                func(r *datatypes.CreateScenarioRequest) { r.Tone = "hostile slur tone" },
		"intent":              func(r *datatypes.CreateScenarioRequest) { r.Intent = "hostile slur intent" },
		"counterpart_name":    func(r *datatypes.CreateScenarioRequest) { r.CounterpartName = "hostile slur" },
		"counterpart_context": func(r *datatypes.CreateScenarioRequest) { r.CounterpartContext = "hostile slur context" },
		"facts":               func(r *datatypes.CreateScenarioRequest) { r.Facts = []string{"hostile slur fact"} },
		"opening_messages":    func(r *datatypes.CreateScenarioRequest) { r.OpeningMessages = []string{"hostile slur opener"} },
	}

	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			router, st := newTestRouter(t, routerOptions{
				moderator: denyKeyword{keyword: "hostile slur"},
			})

			req := base
			mutate(&req)
			body, err := json.Marshal(req)
			require.NoError(t, err)

			w := postJSON(router, "/v1/scenarios", body)
			assert.Equal(t, http.StatusForbidden, w.Code, "field %s escaped moderation", field)

			n, err := st.CountSituations(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 0, n)
		})
	}
}
