// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveLabels(t *testing.T) {
	assert.Equal(t, []SlotLabel{SlotA, SlotB}, ActiveLabels(2))
	assert.Equal(t, []SlotLabel{SlotA, SlotB, SlotC}, ActiveLabels(3))

	// Out-of-range counts clamp to the supported band.
	assert.Equal(t, []SlotLabel{SlotA, SlotB}, ActiveLabels(0))
	assert.Equal(t, []SlotLabel{SlotA, SlotB}, ActiveLabels(1))
	assert.Equal(t, []SlotLabel{SlotA, SlotB, SlotC}, ActiveLabels(7))
}

func TestSlotLabel_Valid(t *testing.T) {
	assert.True(t, SlotA.Valid())
	assert.True(t, SlotB.Valid())
	assert.True(t, SlotC.Valid())
	assert.False(t, SlotLabel("D").Valid())
	assert.False(t, SlotLabel("").Valid())
	assert.False(t, SlotLabel("a").Valid())
}

func TestConversation_LastCounterpartMessage(t *testing.T) {
	conv := Conversation{
		Transcript: []Message{
			{Role: RoleCounterpart, Text: "first"},
			{Role: RolePlayer, Text: "reply"},
			{Role: RoleCounterpart, Text: "second"},
			{Role: RolePlayer, Text: "another reply"},
		},
	}
	assert.Equal(t, "second", conv.LastCounterpartMessage())

	assert.Equal(t, "", Conversation{}.LastCounterpartMessage())
	assert.Equal(t, "", Conversation{
		Transcript: []Message{{Role: RolePlayer, Text: "hi"}},
	}.LastCounterpartMessage())
}

func TestRoundResult_NewConfusionAccessors(t *testing.T) {
	var r RoundResult
	r.SetNewConfusion(SlotA, 2)
	r.SetNewConfusion(SlotB, 0)

	got, ok := r.NewConfusion(SlotA)
	assert.True(t, ok)
	assert.Equal(t, 2, got)

	got, ok = r.NewConfusion(SlotB)
	assert.True(t, ok)
	assert.Equal(t, 0, got)

	_, ok = r.NewConfusion(SlotC)
	assert.False(t, ok)

	r.SetNewConfusion(SlotC, 4)
	got, ok = r.NewConfusion(SlotC)
	assert.True(t, ok)
	assert.Equal(t, 4, got)
}

func TestRoundResult_WireShape(t *testing.T) {
	two := RoundResult{
		Judgment: JudgmentResult{
			SlotA: {Coherence: 8, Relevance: 8, ToneMatch: 8, Directness: 9},
			SlotB: {Coherence: 8, Relevance: 9, ToneMatch: 8, Directness: 8},
		},
		Deltas:        ConfusionDelta{SlotA: -1, SlotB: -1},
		Points:        380,
		NewConfusionA: 1,
		NewConfusionB: 0,
	}

	data, err := json.Marshal(two)
	require.NoError(t, err)

	// Two-slot results carry no third-slot field at all.
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Contains(t, fields, "new_confusion_a")
	assert.Contains(t, fields, "new_confusion_b")
	assert.NotContains(t, fields, "new_confusion_c")
	assert.NotContains(t, fields, "game_over_reason")

	var decoded RoundResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, two, decoded)

	three := two
	three.SetNewConfusion(SlotC, 5)
	three.GameOver = true
	three.GameOverReason = SlotC
	three.Points = 0

	data, err = json.Marshal(three)
	require.NoError(t, err)
	fields = nil
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Contains(t, fields, "new_confusion_c")
	assert.Contains(t, fields, "game_over_reason")
}
