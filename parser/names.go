package parser

import (
	"regexp"
	"strings"
)

var (
	featRe    = regexp.MustCompile(`(?i)\(feat[^)]*\)`)
	bracketRe = regexp.MustCompile(`\[.*?\]`)

	// Word separators only match with the surrounding spaces shown.
	separatorRe = regexp.MustCompile(`(?i)[;,/]| feat\.| ft\. |&| and `)
)

// CleanName strips "(feat ...)" parentheticals and "[...]" annotations and
// trims the result. Matching stops at the first closing bracket, so nested or
// unbalanced brackets are left as they are.
func CleanName(name string) string {
	name = featRe.ReplaceAllString(name, "")
	name = bracketRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// SplitArtists splits a raw cell into cleaned, non-empty artist names.
// Duplicates are kept.
func SplitArtists(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := separatorRe.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = CleanName(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
