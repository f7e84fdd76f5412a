// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
)

// builtinSituations is the starter scenario set inserted on first run.
var builtinSituations = []datatypes.Situation{
	{
		ID:                 "landlord-leak",
		Topic:              "a leaking kitchen ceiling",
		Tone:               "formal",
		Intent:             "get the landlord to schedule a repair this week",
		CounterpartName:    "Mr. Okafor",
		CounterpartContext: "your landlord, polite but slow to act",
		Facts: []string{
			"The leak started two weeks ago after heavy rain.",
			"The tenant has already sent one email that went unanswered.",
		},
		OpeningMessages: []string{
			"Good afternoon. I understand there is some issue with the kitchen? Could you describe it for me?",
		},
	},
	{
		ID:                 "best-friend-trip",
		Topic:              "planning a weekend road trip",
		Tone:               "casual",
		Intent:             "agree on a destination without committing to drive",
		CounterpartName:    "Sam",
		CounterpartContext: "your best friend since college, always broke",
		Facts: []string{
			"Sam's car failed inspection last month.",
			"You went to the coast last year and Sam hated the weather.",
		},
		OpeningMessages: []string{
			"ok hear me out. mountains. this weekend. you in??",
		},
	},
	{
		ID:                 "first-date-chef",
		Topic:              "a first date at a cooking class",
		Tone:               "romantic",
		Intent:             "land a second date without overpromising",
		CounterpartName:    "Riley",
		CounterpartContext: "a chef you matched with last week, witty and direct",
		Facts: []string{
			"Riley mentioned hating small talk in their profile.",
			"The cooking class is this Friday.",
		},
		OpeningMessages: []string{
			"So, be honest: can you actually cook, or am I going to be doing all the work on Friday?",
		},
	},
	{
		ID:                 "manager-deadline",
		Topic:              "a slipping project deadline",
		Tone:               "tense",
		Intent:             "buy another week without admitting the demo is broken",
		CounterpartName:    "Dana",
		CounterpartContext: "your manager, under pressure from their own boss",
		Facts: []string{
			"The demo crashed in yesterday's internal review.",
			"Dana promised the client a release by the 15th.",
		},
		OpeningMessages: []string{
			"I need a straight answer. Are we shipping on the 15th or not?",
		},
	},
}

// Seed inserts the builtin scenarios if the situations table is empty.
func (s *Store) Seed(ctx context.Context) error {
	n, err := s.CountSituations(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, sit := range builtinSituations {
		if _, err := s.CreateSituation(ctx, sit); err != nil {
			return fmt.Errorf("store: seed %s: %w", sit.ID, err)
		}
	}
	slog.Info("Seeded builtin scenarios", "count", len(builtinSituations))
	return nil
}
