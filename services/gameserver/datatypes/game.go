// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes defines the shared types for the doubletalk game service.
package datatypes

// MaxConfusion is the confusion level at which a conversation fails.
const MaxConfusion = 5

// MinSlots and MaxSlots bound the number of simultaneous conversations a
// single reply must satisfy. Three slots is "extreme mode".
const (
	MinSlots = 2
	MaxSlots = 3
)

// SlotLabel identifies one of the simultaneous conversations.
type SlotLabel string

const (
	SlotA SlotLabel = "A"
	SlotB SlotLabel = "B"
	SlotC SlotLabel = "C"
)

// allLabels is the fixed slot priority order. Game-over evaluation and all
// per-slot iteration follow this order.
var allLabels = []SlotLabel{SlotA, SlotB, SlotC}

// ActiveLabels returns the ordered labels for a session with n active slots.
// n outside [MinSlots, MaxSlots] is clamped.
func ActiveLabels(n int) []SlotLabel {
	if n < MinSlots {
		n = MinSlots
	}
	if n > MaxSlots {
		n = MaxSlots
	}
	out := make([]SlotLabel, n)
	copy(out, allLabels[:n])
	return out
}

// Valid reports whether the label is one of A, B, C.
func (l SlotLabel) Valid() bool {
	return l == SlotA || l == SlotB || l == SlotC
}

// Role tags a transcript message with its author.
type Role string

const (
	RoleCounterpart Role = "counterpart"
	RolePlayer      Role = "player"
)

// Message is a single transcript entry. Messages are append-only and never
// mutated after creation.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Situation is an immutable scenario definition authored ahead of play. The
// facts are background context for the oracle only, never analysis of the
// messages themselves.
type Situation struct {
	ID                 string   `json:"id"`
	Topic              string   `json:"topic"`
	Tone               string   `json:"tone"`
	Intent             string   `json:"intent"`
	CounterpartName    string   `json:"counterpart_name"`
	CounterpartContext string   `json:"counterpart_context"`
	Facts              []string `json:"facts,omitempty"`
	OpeningMessages    []string `json:"opening_messages"`
}

// Conversation is the mutable per-session state for one slot. The Situation
// is shared and read-only; the transcript grows by appending and the
// confusion level stays within [0, MaxConfusion].
type Conversation struct {
	Label      SlotLabel `json:"label" binding:"required,slotlabel"`
	Situation  Situation `json:"situation"`
	Transcript []Message `json:"transcript"`
	Confusion  int       `json:"confusion" binding:"min=0,max=5"`
}

// LastCounterpartMessage returns the text of the most recent counterpart
// message, or the empty string if there is none.
func (c Conversation) LastCounterpartMessage() string {
	for i := len(c.Transcript) - 1; i >= 0; i-- {
		if c.Transcript[i].Role == RoleCounterpart {
			return c.Transcript[i].Text
		}
	}
	return ""
}
