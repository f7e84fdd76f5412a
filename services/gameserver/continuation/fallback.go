// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package continuation

import (
	"math/rand/v2"
	"strings"
)

// cannedByTone maps a conversation tone to acknowledgments used when the
// oracle cannot produce a continuation. Flavor only, never score-bearing.
var cannedByTone = map[string][]string{
	"friendly": {
		"Haha, fair enough! So anyway...",
		"Right?? Okay wait, I lost my train of thought.",
		"Totally. Give me a sec, someone's at the door.",
	},
	"formal": {
		"Understood. Let me review and get back to you shortly.",
		"Noted, thank you. One moment please.",
		"Very well. I will follow up on that point.",
	},
	"romantic": {
		"You always know what to say... hold that thought.",
		"Mmm, okay. Sorry, got distracted for a second.",
		"I was just thinking about you. Anyway, where were we?",
	},
	"tense": {
		"Fine. Whatever you say.",
		"I'm not sure how to take that, honestly.",
		"Okay. Let's just... keep going.",
	},
	"casual": {
		"lol ok one sec",
		"ha, yeah. brb",
		"fair. anyway,",
	},
}

// cannedGeneric covers tones without a dedicated table.
var cannedGeneric = []string{
	"Sorry, give me a moment.",
	"Hm, okay. Hold on a second.",
	"Right. Let me think about that.",
}

// cannedFor picks a tone-appropriate acknowledgment. Tone matching is
// case-insensitive on the first word, so "Friendly but guarded" still hits
// the friendly table.
func cannedFor(tone string) string {
	key := strings.ToLower(strings.TrimSpace(tone))
	if idx := strings.IndexAny(key, " ,;"); idx > 0 {
		key = key[:idx]
	}
	table, ok := cannedByTone[key]
	if !ok {
		table = cannedGeneric
	}
	return table[rand.IntN(len(table))]
}
