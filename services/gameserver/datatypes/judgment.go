// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// Rating bounds for the four judge dimensions.
const (
	MinRating = 0
	MaxRating = 10
)

// MaxJudgeNotes caps the explanatory notes carried on a score record.
const MaxJudgeNotes = 4

// JudgeScoreRecord is the oracle's verdict for one slot on one turn. Records
// are produced fresh each turn and never persisted across turns.
type JudgeScoreRecord struct {
	// Coherence, Relevance, ToneMatch and Directness are integer ratings
	// in [MinRating, MaxRating].
	Coherence  int `json:"coherence"`
	Relevance  int `json:"relevance"`
	ToneMatch  int `json:"tone_match"`
	Directness int `json:"directness"`

	// Contradiction is set when the reply contradicts something the player
	// previously said in this conversation.
	Contradiction bool `json:"contradiction"`

	// Unsafe is set when the reply is hostile or otherwise unacceptable in
	// this conversation's context.
	Unsafe bool `json:"unsafe"`

	// Notes holds at most MaxJudgeNotes short explanations.
	Notes []string `json:"notes,omitempty"`
}

// JudgmentResult maps each active slot to its score record. The key set is
// exactly the session's active labels for every turn of that session.
type JudgmentResult map[SlotLabel]JudgeScoreRecord

// ConfusionDelta maps each active slot to its signed confusion change for
// the turn. Values are always in {-1, 0, +1, +2}.
type ConfusionDelta map[SlotLabel]int

// GameOverVerdict is the termination decision for a turn.
type GameOverVerdict struct {
	GameOver bool `json:"game_over"`
	// Reason is the first slot, in A, B, C order, whose new confusion
	// reached MaxConfusion. Empty when GameOver is false.
	Reason SlotLabel `json:"reason,omitempty"`
}

// RoundResult is the output envelope for one resolved turn. Per-slot
// confusion is serialized as flat fields rather than a nested map so that
// two-slot consumers keep working unchanged when a third slot is active.
type RoundResult struct {
	Judgment JudgmentResult `json:"judgment"`
	Deltas   ConfusionDelta `json:"confusion_deltas"`

	// Points is the score gained this turn. Always >= 0, and forced to
	// zero when the turn ends the game.
	Points int `json:"points"`

	NewConfusionA int  `json:"new_confusion_a"`
	NewConfusionB int  `json:"new_confusion_b"`
	NewConfusionC *int `json:"new_confusion_c,omitempty"`

	GameOver       bool      `json:"game_over"`
	GameOverReason SlotLabel `json:"game_over_reason,omitempty"`
}

// NewConfusion returns the serialized post-turn confusion for a label and
// whether that label is present in the result.
func (r RoundResult) NewConfusion(label SlotLabel) (int, bool) {
	switch label {
	case SlotA:
		return r.NewConfusionA, true
	case SlotB:
		return r.NewConfusionB, true
	case SlotC:
		if r.NewConfusionC != nil {
			return *r.NewConfusionC, true
		}
	}
	return 0, false
}

// SetNewConfusion records the post-turn confusion for a label on the flat
// wire fields.
func (r *RoundResult) SetNewConfusion(label SlotLabel, confusion int) {
	switch label {
	case SlotA:
		r.NewConfusionA = confusion
	case SlotB:
		r.NewConfusionB = confusion
	case SlotC:
		c := confusion
		r.NewConfusionC = &c
	}
}
