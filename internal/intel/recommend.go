package intel

// DefaultRecommendation is emitted when no factor triggered.
const DefaultRecommendation = "No significant risk indicators were found across the queried sources."

// Recommend maps triggered factors to their advisory messages in catalog
// order, deduplicated. Recommendations are display text only; they never
// feed back into the score.
func Recommend(triggered []Factor) []string {
	if len(triggered) == 0 {
		return []string{DefaultRecommendation}
	}

	seen := make(map[string]struct{}, len(triggered))
	out := make([]string, 0, len(triggered))
	for _, factor := range triggered {
		if factor.Message == "" {
			continue
		}
		if _, dup := seen[factor.Message]; dup {
			continue
		}
		seen[factor.Message] = struct{}{}
		out = append(out, factor.Message)
	}

	if len(out) == 0 {
		return []string{DefaultRecommendation}
	}
	return out
}
