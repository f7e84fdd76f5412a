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

func TestEvaluateGameOver(t *testing.T) {
	two := datatypes.ActiveLabels(2)
	three := datatypes.ActiveLabels(3)

	tests := []struct {
		name       string
		labels     []datatypes.SlotLabel
		confusion  map[datatypes.SlotLabel]int
		wantOver   bool
		wantReason datatypes.SlotLabel
	}{
		{
			name:      "nobody at threshold",
			labels:    two,
			confusion: map[datatypes.SlotLabel]int{datatypes.SlotA: 4, datatypes.SlotB: 4},
			wantOver:  false,
		},
		{
			name:       "slot B fails",
			labels:     two,
			confusion:  map[datatypes.SlotLabel]int{datatypes.SlotA: 0, datatypes.SlotB: 5},
			wantOver:   true,
			wantReason: datatypes.SlotB,
		},
		{
			name:       "A and B fail together, A is the reason",
			labels:     two,
			confusion:  map[datatypes.SlotLabel]int{datatypes.SlotA: 5, datatypes.SlotB: 5},
			wantOver:   true,
			wantReason: datatypes.SlotA,
		},
		{
			name:       "B and C fail together, B is the reason",
			labels:     three,
			confusion:  map[datatypes.SlotLabel]int{datatypes.SlotA: 2, datatypes.SlotB: 5, datatypes.SlotC: 5},
			wantOver:   true,
			wantReason: datatypes.SlotB,
		},
		{
			name:       "only C fails in extreme mode",
			labels:     three,
			confusion:  map[datatypes.SlotLabel]int{datatypes.SlotA: 0, datatypes.SlotB: 0, datatypes.SlotC: 5},
			wantOver:   true,
			wantReason: datatypes.SlotC,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := EvaluateGameOver(tt.labels, tt.confusion)
			assert.Equal(t, tt.wantOver, verdict.GameOver)
			assert.Equal(t, tt.wantReason, verdict.Reason)
		})
	}
}
