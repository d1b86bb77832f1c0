package record

import "strings"

// ParseHeaderText splits the embedding application's flattened header text
// ("key:value\n" per header) into ordered pairs. Keys and values are
// trimmed of surrounding whitespace; a line with no colon is skipped.
func ParseHeaderText(text string) []HeaderPair {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	pairs := make([]HeaderPair, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		pairs = append(pairs, HeaderPair{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}

	return pairs
}

// FormatHeaderText renders pairs back into the flattened "key:value\n" text
// form, the inverse of ParseHeaderText.
func FormatHeaderText(pairs []HeaderPair) string {
	if len(pairs) == 0 {
		return ""
	}

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(p.Key)
		b.WriteByte(':')
		b.WriteString(p.Value)
		b.WriteByte('\n')
	}

	return b.String()
}
