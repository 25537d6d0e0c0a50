package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  return strings.ToLower(strings.TrimSpace(input))
}

// TrimInputString trims whitespace without lowercasing, for free-text fields
// where case matters (answers, question content, preambles).
func TrimInputString(input string) string {
  return strings.TrimSpace(input)
}
