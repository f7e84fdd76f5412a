// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import "github.com/quorumgames/doubletalk/services/gameserver/datatypes"

// Scoring weights. The reply is only as good as its worst-served
// conversation, so each dimension contributes the minimum of slots A and B.
const (
	coherenceWeight  = 10
	relevanceWeight  = 10
	toneWeight       = 5
	directnessReward = 30
	roundBonus       = 50
)

// Points computes the points gained for a turn.
//
//	points = 10*min(cohA,cohB) + 10*min(relA,relB) + 5*min(toneA,toneB)
//	       + 30 if both directness >= DirectnessBonus
//	       + 50*roundNumber
//
// Slot C, when active, is judged and surfaced but does not enter the
// formula; only the two mandatory slots gate the minimum terms and the
// directness reward. roundNumber is 1-based. The result is never negative.
func Points(judgment datatypes.JudgmentResult, roundNumber int) int {
	a, okA := judgment[datatypes.SlotA]
	b, okB := judgment[datatypes.SlotB]
	if !okA || !okB {
		return 0
	}
	if roundNumber < 1 {
		roundNumber = 1
	}

	points := coherenceWeight*min(a.Coherence, b.Coherence) +
		relevanceWeight*min(a.Relevance, b.Relevance) +
		toneWeight*min(a.ToneMatch, b.ToneMatch)
	if a.Directness >= DirectnessBonus && b.Directness >= DirectnessBonus {
		points += directnessReward
	}
	points += roundBonus * roundNumber

	if points < 0 {
		points = 0
	}
	return points
}
