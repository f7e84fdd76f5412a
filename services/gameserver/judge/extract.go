// Copyright (C) 2025 Quorum Games (oss@quorumgames.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package judge

import "strings"

// ExtractJSONObject pulls a JSON object out of raw oracle text.
//
// This is a two-stage parsing contract, not incidental string munging:
//  1. fenced code block extraction (```json or bare ```)
//  2. first '{' to last '}' in the free text
//
// The second return value is false when neither stage finds a candidate
// object; the caller treats that response as unparseable.
func ExtractJSONObject(response string) (string, bool) {
	if block, ok := extractFencedBlock(response); ok {
		return block, true
	}
	return extractBraceObject(response)
}

func extractFencedBlock(response string) (string, bool) {
	startMarkers := []string{"```json\n", "```json\r\n", "```\n", "```\r\n"}
	const endMarker = "```"

	for _, startMarker := range startMarkers {
		startIdx := strings.Index(response, startMarker)
		if startIdx == -1 {
			continue
		}
		contentStart := startIdx + len(startMarker)
		remaining := response[contentStart:]
		endIdx := strings.Index(remaining, endMarker)
		if endIdx == -1 {
			continue
		}
		block := strings.TrimSpace(remaining[:endIdx])
		if block != "" {
			return block, true
		}
	}
	return "", false
}

func extractBraceObject(response string) (string, bool) {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return "", false
	}
	return response[startIdx : endIdx+1], true
}
