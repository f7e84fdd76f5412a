// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// ResolveRoundRequest is the turn-resolution request body.
type ResolveRoundRequest struct {
	Conversations []Conversation `json:"conversations" binding:"required,min=2,max=3,dive"`
	PlayerReply   string         `json:"player_reply" binding:"required"`
	RoundNumber   int            `json:"round_number" binding:"required,min=1"`
}

// Labels returns the request's slot labels in declaration order.
func (r ResolveRoundRequest) Labels() []SlotLabel {
	labels := make([]SlotLabel, 0, len(r.Conversations))
	for _, conv := range r.Conversations {
		labels = append(labels, conv.Label)
	}
	return labels
}

// ContinuationsRequest asks for the next counterpart message per slot. The
// transcripts should already include the player's latest reply.
type ContinuationsRequest struct {
	Conversations []Conversation `json:"conversations" binding:"required,min=2,max=3,dive"`
}

// ContinuationsResponse carries one generated (or canned) counterpart
// message per requested slot.
type ContinuationsResponse struct {
	Messages map[SlotLabel]string `json:"messages"`
}

// CreateScenarioRequest is the scenario authoring request. Every text field
// passes moderation before the scenario is stored.
type CreateScenarioRequest struct {
	Topic              string   `json:"topic" binding:"required,max=200"`
	Tone               string   `json:"tone" binding:"required,max=50"`
	Intent             string   `json:"intent" binding:"required,max=200"`
	CounterpartName    string   `json:"counterpart_name" binding:"required,max=100"`
	CounterpartContext string   `json:"counterpart_context" binding:"required,max=500"`
	Facts              []string `json:"facts" binding:"max=10,dive,max=300"`
	OpeningMessages    []string `json:"opening_messages" binding:"required,min=1,max=5,dive,required,max=500"`
}

// SaveScoreRequest records a finished game on the leaderboard.
type SaveScoreRequest struct {
	Player string `json:"player" binding:"required,max=60"`
	Points int    `json:"points" binding:"min=0"`
	Rounds int    `json:"rounds" binding:"required,min=1"`
	Slots  int    `json:"slots" binding:"required,min=2,max=3"`
}

// ScoreEntry is one leaderboard row.
type ScoreEntry struct {
	ID        string `json:"id"`
	Player    string `json:"player"`
	Points    int    `json:"points"`
	Rounds    int    `json:"rounds"`
	Slots     int    `json:"slots"`
	CreatedAt string `json:"created_at"`
}
