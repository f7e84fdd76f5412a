// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package moderation wraps the content policy check run over player replies
// and author-supplied scenario text before any oracle call is made.
package moderation

import "context"

// Decision is the outcome of a moderation check.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Moderator checks a batch of texts against the content policy. A returned
// error means the check itself could not run, not that the texts failed it.
type Moderator interface {
	Moderate(ctx context.Context, texts []string) (Decision, error)
}

// AllowAll is a Moderator that approves everything. Used when no moderation
// backend is configured and in tests.
type AllowAll struct{}

// Moderate implements Moderator.
func (AllowAll) Moderate(_ context.Context, _ []string) (Decision, error) {
	return Decision{Allowed: true}, nil
}
