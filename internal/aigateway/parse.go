package aigateway

import (
	"encoding/json"
	"errors"
	"strings"
)

// extractJSON strips Markdown code fences and returns the first balanced
// {...} or [...] substring of s. Models regularly wrap their JSON in fences
// or surround it with chatter; parse failures here route to the same
// fallback path as transport failures.
func extractJSON(s string) (string, error) {
	s = stripFences(s)

	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			open = s[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return "", errors.New("no JSON object in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", errors.New("unbalanced JSON in response")
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language hint like "json" on the fence line.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if len(first) <= 10 && !strings.ContainsAny(first, "{[") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeJSON extracts and unmarshals the first JSON value in text into v.
func decodeJSON(text string, v any) error {
	raw, err := extractJSON(text)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), v)
}
