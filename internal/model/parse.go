package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	optionPattern         = regexp.MustCompile(`(?i)option\s*(\d+)`)
	integerPattern        = regexp.MustCompile(`\d+`)
	classificationPattern = regexp.MustCompile(`(?i)\b(vowel|consonant|even|odd)\b`)
)

// ExtractChoice parses a 1-based option choice out of free-form model text
// and returns it 0-based. It prefers an explicit "option N" phrase and falls
// back to the first bare integer.
func ExtractChoice(reply string, optionCount int) (int, error) {
	trimmed := strings.TrimSpace(reply)
	match := optionPattern.FindStringSubmatch(trimmed)
	if match == nil {
		match = integerPattern.FindStringSubmatch(trimmed)
		if match == nil {
			return 0, fmt.Errorf("no option number in reply %q", trimmed)
		}
		match = []string{match[0], match[0]}
	}
	number, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("parse option number %q: %w", match[1], err)
	}
	if number < 1 || number > optionCount {
		return 0, fmt.Errorf("option %d out of range 1-%d", number, optionCount)
	}
	return number - 1, nil
}

// ExtractClassification returns the first classification keyword (vowel,
// consonant, even, odd) found in the reply, lowercased.
func ExtractClassification(reply string) (string, error) {
	match := classificationPattern.FindString(reply)
	if match == "" {
		return "", fmt.Errorf("no classification in reply %q", strings.TrimSpace(reply))
	}
	return strings.ToLower(match), nil
}
