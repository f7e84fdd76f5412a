// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import "errors"

// Sentinel errors for turn rejection. All of these reject the turn before
// any oracle call is made and mutate no game state.
var (
	// ErrEmptyReply rejects a blank or whitespace-only player reply.
	ErrEmptyReply = errors.New("player reply is empty")

	// ErrReplyTooLong rejects a reply over the configured character limit.
	ErrReplyTooLong = errors.New("player reply exceeds the maximum length")

	// ErrInvalidSlots rejects a request whose conversations are not
	// labeled A, B and optionally C, in that order.
	ErrInvalidSlots = errors.New("conversations must be labeled A, B and optionally C in order")

	// ErrModerationRejected rejects a reply that failed the content
	// policy check.
	ErrModerationRejected = errors.New("reply rejected by moderation")
)
