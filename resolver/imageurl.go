package resolver

import "strings"

// NormalizeImageURL drops the query string, expands protocol-relative and
// site-relative URLs against siteURL and rejects anything that is not http(s).
// The result is empty when the URL is rejected. Applying it twice is the same
// as applying it once.
func NormalizeImageURL(raw, siteURL string) string {
	if raw == "" {
		return ""
	}
	u, _, _ := strings.Cut(raw, "?")
	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	}
	if strings.HasPrefix(u, "/") {
		u = strings.TrimSuffix(siteURL, "/") + u
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		// Icons are often served from .ashx-style endpoints, so the
		// extension is not checked.
		return u
	}
	return ""
}

// ExtractImage picks an image URL from a decoded instant-answer document.
// Candidates are tried in order: Image/image, the first non-empty icon among
// RelatedTopics (including nested Topics), then AbstractImage. The first
// candidate present is normalized and returned even if normalization rejects it.
func ExtractImage(doc map[string]any, siteURL string) string {
	// A set non-string Image hides image; both are then skipped.
	raw := doc["Image"]
	if !present(raw) {
		raw = doc["image"]
	}
	if img, ok := raw.(string); ok && strings.TrimSpace(img) != "" {
		return NormalizeImageURL(img, siteURL)
	}

	if topics, ok := doc["RelatedTopics"].([]any); ok {
		for _, item := range topics {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if icon := iconURL(entry); icon != "" {
				return NormalizeImageURL(icon, siteURL)
			}
			nested, ok := entry["Topics"].([]any)
			if !ok {
				continue
			}
			for _, sub := range nested {
				subEntry, ok := sub.(map[string]any)
				if !ok {
					continue
				}
				if icon := iconURL(subEntry); icon != "" {
					return NormalizeImageURL(icon, siteURL)
				}
			}
		}
	}

	if abs := stringField(doc, "AbstractImage"); abs != "" {
		return NormalizeImageURL(abs, siteURL)
	}
	return ""
}

func iconURL(entry map[string]any) string {
	icon, ok := entry["Icon"].(map[string]any)
	if !ok {
		return ""
	}
	u := stringField(icon, "URL")
	if u == "" {
		u = stringField(icon, "url")
	}
	if strings.TrimSpace(u) == "" {
		return ""
	}
	return u
}

// present reports whether a decoded JSON value is set and non-empty.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
