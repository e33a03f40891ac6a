package utils

import "strings"

// ExtractAddress pulls the bare address out of a From-style header
// value such as `Jan Kowalski <jan@example.com>`.
func ExtractAddress(headerValue string) string {
	headerValue = strings.TrimSpace(headerValue)
	if strings.Contains(headerValue, "<") && strings.Contains(headerValue, ">") {
		startIdx := strings.LastIndex(headerValue, "<") + 1
		endIdx := strings.LastIndex(headerValue, ">")
		if startIdx > 0 && endIdx > startIdx {
			return headerValue[startIdx:endIdx]
		}
	}
	return headerValue
}
