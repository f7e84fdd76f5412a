// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package judge

import (
	"fmt"
	"strings"

	"github.com/quorumgames/doubletalk/services/gameserver/datatypes"
)

const judgeInstructions = `You are scoring one player reply that must work simultaneously as the next message in EVERY conversation below. Judge the reply against each conversation independently.

For each conversation rate, as integers from 0 to 10:
- coherence: does the reply read as a sensible next message in this conversation?
- relevance: does it engage with this conversation's topic and the counterpart's last message?
- tone_match: does it fit this conversation's tone?
- directness: does it directly address what the counterpart asked or raised?

Also set two booleans:
- contradiction: true if the reply contradicts something the player previously said in this conversation.
- unsafe: true if the reply is hostile, abusive or otherwise unacceptable in this conversation's context.

Optionally add up to %d short notes per conversation.

Respond with ONLY a JSON object keyed by conversation label, no markdown, no preamble:
{"A": {"coherence": 0, "relevance": 0, "tone_match": 0, "directness": 0, "contradiction": false, "unsafe": false, "notes": []}, ...}`

// BuildJudgePrompt renders the single oracle request covering all active
// conversations and the player reply.
func BuildJudgePrompt(convs []datatypes.Conversation, playerReply string) string {
	var b strings.Builder
	fmt.Fprintf(&b, judgeInstructions, datatypes.MaxJudgeNotes)
	b.WriteString("\n\n")

	for _, conv := range convs {
		fmt.Fprintf(&b, "=== Conversation %s ===\n", conv.Label)
		fmt.Fprintf(&b, "Topic: %s\nTone: %s\nPlayer's intent: %s\n",
			conv.Situation.Topic, conv.Situation.Tone, conv.Situation.Intent)
		fmt.Fprintf(&b, "Counterpart: %s (%s)\n",
			conv.Situation.CounterpartName, conv.Situation.CounterpartContext)
		for _, fact := range conv.Situation.Facts {
			fmt.Fprintf(&b, "Background: %s\n", fact)
		}
		b.WriteString("Transcript:\n")
		for _, msg := range conv.Transcript {
			speaker := conv.Situation.CounterpartName
			if msg.Role == datatypes.RolePlayer {
				speaker = "Player"
			}
			fmt.Fprintf(&b, "  %s: %s\n", speaker, msg.Text)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "=== Player reply to judge ===\n%s\n", playerReply)
	return b.String()
}
