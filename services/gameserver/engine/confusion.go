// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package engine holds the deterministic round-resolution logic: confusion
// deltas, scoring, game-over evaluation and the resolver that sequences a
// turn. Everything here is pure and replayable; the only non-deterministic
// input is the judgment produced upstream by the oracle.
package engine

import "github.com/quorumgames/doubletalk/services/gameserver/datatypes"

// Thresholds for the confusion decision table.
const (
	PassCoherence   = 7
	PassRelevance   = 7
	DirectnessBonus = 8
	PartialFloor    = 5
)

// ConfusionDeltaFor converts one judge score record into a confusion delta.
//
// The decision table is evaluated in order:
//  1. unsafe                                  -> +2
//  2. contradiction                           -> +2
//  3. coherence/relevance pass + directness   -> -1
//  4. coherence/relevance pass                ->  0
//  5. both at least partial                   -> +1
//  6. anything else                           -> +2
//
// The result is always one of {-1, 0, +1, +2} and depends on nothing but
// the record.
func ConfusionDeltaFor(rec datatypes.JudgeScoreRecord) int {
	switch {
	case rec.Unsafe:
		return 2
	case rec.Contradiction:
		return 2
	case rec.Coherence >= PassCoherence && rec.Relevance >= PassRelevance && rec.Directness >= DirectnessBonus:
		return -1
	case rec.Coherence >= PassCoherence && rec.Relevance >= PassRelevance:
		return 0
	case rec.Coherence >= PartialFloor && rec.Relevance >= PartialFloor:
		return 1
	default:
		return 2
	}
}

// ClampConfusion maps an arbitrary confusion value into [0, MaxConfusion].
// Idempotent: ClampConfusion(ClampConfusion(x)) == ClampConfusion(x).
func ClampConfusion(level int) int {
	if level < 0 {
		return 0
	}
	if level > datatypes.MaxConfusion {
		return datatypes.MaxConfusion
	}
	return level
}

// ConfusionDeltas applies ConfusionDeltaFor to every record in a judgment.
func ConfusionDeltas(judgment datatypes.JudgmentResult) datatypes.ConfusionDelta {
	deltas := make(datatypes.ConfusionDelta, len(judgment))
	for label, rec := range judgment {
		deltas[label] = ConfusionDeltaFor(rec)
	}
	return deltas
}
