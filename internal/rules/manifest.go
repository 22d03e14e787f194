package rules

import (
	"strings"
	"unicode"
)

const (
	commentMarkerConstant    = "#"
	hiddenPrefixConstant     = "."
	underscorePrefixConstant = "_"
	lineSeparatorConstant    = "\n"
)

// NormalizeRuleName canonicalizes one raw manifest line. The second return
// value reports whether the line holds a usable rule name: blank lines,
// comments, names containing whitespace, and names starting with '.' or '_'
// are all rejected.
func NormalizeRuleName(rawLine string) (string, bool) {
	trimmedLine := strings.TrimSpace(rawLine)
	if len(trimmedLine) == 0 {
		return "", false
	}
	if strings.HasPrefix(trimmedLine, commentMarkerConstant) {
		return "", false
	}
	if strings.IndexFunc(trimmedLine, unicode.IsSpace) >= 0 {
		return "", false
	}
	if strings.HasPrefix(trimmedLine, hiddenPrefixConstant) || strings.HasPrefix(trimmedLine, underscorePrefixConstant) {
		return "", false
	}
	return trimmedLine, true
}

// NormalizeRuleNames filters raw manifest lines into an order-preserving list
// of unique rule names. Rejected lines are dropped silently; later duplicates
// of an already seen name are dropped as well.
func NormalizeRuleNames(rawLines []string) []string {
	seenNames := make(map[string]struct{})
	ruleNames := make([]string, 0, len(rawLines))
	for _, rawLine := range rawLines {
		ruleName, usable := NormalizeRuleName(rawLine)
		if !usable {
			continue
		}
		if _, alreadySeen := seenNames[ruleName]; alreadySeen {
			continue
		}
		seenNames[ruleName] = struct{}{}
		ruleNames = append(ruleNames, ruleName)
	}
	return ruleNames
}

// ParseManifest normalizes the raw content of a manifest document.
func ParseManifest(content string) []string {
	return NormalizeRuleNames(strings.Split(content, lineSeparatorConstant))
}

// SerializeManifest renders rule names back into canonical manifest content:
// newline separated with a single trailing newline, or the empty string when
// no rules remain.
func SerializeManifest(ruleNames []string) string {
	if len(ruleNames) == 0 {
		return ""
	}
	return strings.Join(ruleNames, lineSeparatorConstant) + lineSeparatorConstant
}
