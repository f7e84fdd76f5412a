// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
)

func TestPoints_StrongRoundThree(t *testing.T) {
	rec := datatypes.JudgeScoreRecord{Coherence: 8, Relevance: 8, ToneMatch: 8, Directness: 9}
	judgment := datatypes.JudgmentResult{datatypes.SlotA: rec, datatypes.SlotB: rec}

	// 10*8 + 10*8 + 5*8 + 30 + 50*3 = 380
	assert.Equal(t, 380, Points(judgment, 3))
}

func TestPoints_MinimumOfBothSlots(t *testing.T) {
	judgment := datatypes.JudgmentResult{
		datatypes.SlotA: {Coherence: 10, Relevance: 3, ToneMatch: 9, Directness: 10},
		datatypes.SlotB: {Coherence: 6, Relevance: 9, ToneMatch: 2, Directness: 7},
	}
	// 10*6 + 10*3 + 5*2 + 0 + 50*1 = 150
	assert.Equal(t, 150, Points(judgment, 1))
}

func TestPoints_DirectnessRewardNeedsBoth(t *testing.T) {
	a := datatypes.JudgeScoreRecord{Coherence: 8, Relevance: 8, ToneMatch: 8, Directness: 9}
	b := a
	b.Directness = 7

	with := Points(datatypes.JudgmentResult{datatypes.SlotA: a, datatypes.SlotB: a}, 1)
	without := Points(datatypes.JudgmentResult{datatypes.SlotA: a, datatypes.SlotB: b}, 1)
	assert.Equal(t, 30, with-without)
}

// Slot C is surfaced but never enters the formula.
func TestPoints_SlotCIgnored(t *testing.T) {
	a := datatypes.JudgeScoreRecord{Coherence: 8, Relevance: 8, ToneMatch: 8, Directness: 9}
	two := datatypes.JudgmentResult{datatypes.SlotA: a, datatypes.SlotB: a}
	three := datatypes.JudgmentResult{
		datatypes.SlotA: a,
		datatypes.SlotB: a,
		datatypes.SlotC: {Coherence: 0, Relevance: 0, ToneMatch: 0, Directness: 0},
	}
	assert.Equal(t, Points(two, 2), Points(three, 2))
}

func TestPoints_NeverNegative(t *testing.T) {
	judgment := datatypes.JudgmentResult{
		datatypes.SlotA: {},
		datatypes.SlotB: {},
	}
	assert.GreaterOrEqual(t, Points(judgment, 1), 0)
}

func TestPoints_MissingMandatorySlot(t *testing.T) {
	judgment := datatypes.JudgmentResult{
		datatypes.SlotA: {Coherence: 9, Relevance: 9, ToneMatch: 9, Directness: 9},
	}
	assert.Equal(t, 0, Points(judgment, 4))
}

func TestPoints_RoundBonusGrows(t *testing.T) {
	rec := datatypes.JudgeScoreRecord{Coherence: 7, Relevance: 7, ToneMatch: 7, Directness: 7}
	judgment := datatypes.JudgmentResult{datatypes.SlotA: rec, datatypes.SlotB: rec}
	assert.Equal(t, 50, Points(judgment, 2)-Points(judgment, 1))
}
