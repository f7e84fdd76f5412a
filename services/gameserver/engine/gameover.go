// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import "github.com/quorumgames/doubletalk/services/gameserver/datatypes"

// EvaluateGameOver decides whether the turn ends the game. labels must be
// the session's active labels in priority order (A before B before C); the
// first label whose new confusion reached MaxConfusion is reported as the
// reason even when several cross the threshold on the same turn.
func EvaluateGameOver(labels []datatypes.SlotLabel, newConfusion map[datatypes.SlotLabel]int) datatypes.GameOverVerdict {
	for _, label := range labels {
		if newConfusion[label] >= datatypes.MaxConfusion {
			return datatypes.GameOverVerdict{GameOver: true, Reason: label}
		}
	}
	return datatypes.GameOverVerdict{}
}
