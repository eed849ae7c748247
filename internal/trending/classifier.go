package trending

import "strings"

// CategoryAll is the fallback category when no keyword matches.
const CategoryAll = "all"

// Classifier infers a content category from free text. Implementations must
// be safe for concurrent use.
type Classifier interface {
	Classify(text string) string
}

// categoryKeywords pairs a category with its match list. Order matters:
// classification is first-match-wins over this table, so earlier categories
// shadow later ones for overlapping keywords.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"music", []string{"music", "song", "album", "concert", "cover", "remix", "lyrics", "band"}},
	{"gaming", []string{"game", "gaming", "gameplay", "playthrough", "speedrun", "esports", "fortnite", "minecraft"}},
	{"education", []string{"tutorial", "learn", "course", "lesson", "how to", "explained", "lecture", "study"}},
	{"entertainment", []string{"funny", "comedy", "prank", "challenge", "reaction", "vlog", "entertainment"}},
	{"technology", []string{"tech", "technology", "programming", "software", "gadget", "review", "unboxing", "coding"}},
	{"sports", []string{"sport", "football", "soccer", "basketball", "highlights", "workout", "fitness", "match"}},
	{"news", []string{"news", "breaking", "politics", "report", "update", "announcement"}},
	{"lifestyle", []string{"lifestyle", "travel", "food", "cooking", "recipe", "fashion", "beauty", "routine"}},
	{"science", []string{"science", "physics", "space", "biology", "chemistry", "experiment", "research"}},
}

// Categories returns the recognized category names, in classification order.
func Categories() []string {
	out := make([]string, 0, len(categoryKeywords))
	for _, e := range categoryKeywords {
		out = append(out, e.category)
	}
	return out
}

// ValidCategory reports whether c is a recognized category or "all".
func ValidCategory(c string) bool {
	if c == CategoryAll {
		return true
	}
	for _, e := range categoryKeywords {
		if e.category == c {
			return true
		}
	}
	return false
}

// KeywordClassifier classifies text by case-insensitive substring match
// against a fixed keyword table. First category with a hit wins; no
// weighting between categories.
type KeywordClassifier struct{}

// NewKeywordClassifier returns the default keyword-table classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify returns the first category whose keyword list matches the text,
// or "all" when nothing matches.
func (kc *KeywordClassifier) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, e := range categoryKeywords {
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				return e.category
			}
		}
	}
	return CategoryAll
}
