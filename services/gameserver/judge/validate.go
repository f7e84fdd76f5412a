// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package judge

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
)

// rawScoreRecord mirrors JudgeScoreRecord with pointer fields so missing
// keys can be told apart from zero values.
type rawScoreRecord struct {
	Coherence     *float64 `json:"coherence"`
	Relevance     *float64 `json:"relevance"`
	ToneMatch     *float64 `json:"tone_match"`
	Directness    *float64 `json:"directness"`
	Contradiction *bool    `json:"contradiction"`
	Unsafe        *bool    `json:"unsafe"`
	Notes         []string `json:"notes"`
}

// ParseJudgment validates an extracted JSON payload against the judgment
// schema: exactly one record per active label, all six scored fields
// present with the right types, ratings integral and in range. Notes beyond
// MaxJudgeNotes are dropped rather than rejected.
func ParseJudgment(payload string, labels []datatypes.SlotLabel) (datatypes.JudgmentResult, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("judgment is not a JSON object: %w", err)
	}

	// Index keys case-insensitively; models drift between "A" and "a".
	byLabel := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		byLabel[strings.ToUpper(strings.TrimSpace(key))] = value
	}

	result := make(datatypes.JudgmentResult, len(labels))
	for _, label := range labels {
		slot, ok := byLabel[string(label)]
		if !ok {
			return nil, fmt.Errorf("judgment is missing slot %s", label)
		}
		rec, err := parseScoreRecord(slot)
		if err != nil {
			return nil, fmt.Errorf("slot %s: %w", label, err)
		}
		result[label] = rec
	}
	return result, nil
}

func parseScoreRecord(data json.RawMessage) (datatypes.JudgeScoreRecord, error) {
	var raw rawScoreRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return datatypes.JudgeScoreRecord{}, fmt.Errorf("malformed score record: %w", err)
	}

	coherence, err := requireRating("coherence", raw.Coherence)
	if err != nil {
		return datatypes.JudgeScoreRecord{}, err
	}
	relevance, err := requireRating("relevance", raw.Relevance)
	if err != nil {
		return datatypes.JudgeScoreRecord{}, err
	}
	toneMatch, err := requireRating("tone_match", raw.ToneMatch)
	if err != nil {
		return datatypes.JudgeScoreRecord{}, err
	}
	directness, err := requireRating("directness", raw.Directness)
	if err != nil {
		return datatypes.JudgeScoreRecord{}, err
	}
	if raw.Contradiction == nil {
		return datatypes.JudgeScoreRecord{}, fmt.Errorf("missing required field contradiction")
	}
	if raw.Unsafe == nil {
		return datatypes.JudgeScoreRecord{}, fmt.Errorf("missing required field unsafe")
	}

	notes := raw.Notes
	if len(notes) > datatypes.MaxJudgeNotes {
		notes = notes[:datatypes.MaxJudgeNotes]
	}

	return datatypes.JudgeScoreRecord{
		Coherence:     coherence,
		Relevance:     relevance,
		ToneMatch:     toneMatch,
		Directness:    directness,
		Contradiction: *raw.Contradiction,
		Unsafe:        *raw.Unsafe,
		Notes:         notes,
	}, nil
}

// requireRating checks a rating is present, finite, integral and in
// [MinRating, MaxRating]. Integral floats ("7.0") are accepted; models
// emit them routinely.
func requireRating(name string, value *float64) (int, error) {
	if value == nil {
		return 0, fmt.Errorf("missing required field %s", name)
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("field %s is not finite", name)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("field %s must be an integer, got %v", name, v)
	}
	rating := int(v)
	if rating < datatypes.MinRating || rating > datatypes.MaxRating {
		return 0, fmt.Errorf("field %s out of range [%d,%d]: %d",
			name, datatypes.MinRating, datatypes.MaxRating, rating)
	}
	return rating, nil
}
