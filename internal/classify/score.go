package classify

import "strings"

// environmentalKeywords is the fixed vocabulary used to judge whether
// detected labels and objects are environmentally relevant.
var environmentalKeywords = []string{
	// Nature and environment
	"tree", "plant", "forest", "garden", "park", "beach", "ocean", "river", "lake",
	"mountain", "wildlife", "animal", "bird", "fish", "flower", "grass", "soil",

	// Environmental activities
	"planting", "cleaning", "recycling", "conservation", "sustainability",
	"renewable", "solar", "wind", "water", "energy", "waste", "compost",

	// Environmental objects
	"bin", "container", "tool", "equipment", "vehicle", "bicycle", "bus",
	"sign", "poster", "banner", "flag", "symbol", "logo",

	// People and actions
	"person", "people", "group", "team", "volunteer", "worker", "student",
	"activity", "event", "meeting", "workshop", "training", "education",
}

// categoryMapping pairs a category name with its keyword list. Order
// matters: ties between categories resolve to the earlier entry.
type categoryMapping struct {
	name     string
	keywords []string
}

var categoryMappings = []categoryMapping{
	{"tree_planting", []string{"tree", "plant", "planting", "sapling", "seedling", "garden", "forest"}},
	{"beach_cleanup", []string{"beach", "ocean", "sea", "sand", "trash", "cleaning", "cleanup", "litter"}},
	{"recycling", []string{"recycling", "bin", "container", "waste", "plastic", "paper", "metal", "glass"}},
	{"energy_conservation", []string{"solar", "wind", "energy", "light", "bulb", "power", "electricity"}},
	{"water_conservation", []string{"water", "tap", "faucet", "drip", "irrigation", "rain", "conservation"}},
	{"wildlife_protection", []string{"animal", "wildlife", "bird", "fish", "habitat", "protection", "conservation"}},
	{"community_garden", []string{"garden", "community", "vegetable", "fruit", "plant", "soil", "compost"}},
	{"plastic_reduction", []string{"plastic", "reduction", "alternative", "bamboo", "reusable", "sustainable"}},
	{"sustainable_transport", []string{"bicycle", "bus", "walking", "transport", "vehicle", "green", "eco"}},
	{"education", []string{"education", "training", "workshop", "meeting", "presentation", "learning"}},
}

// safetyLevels maps SafeSearch likelihood names to an ordinal safety
// value. VERY_LIKELY objectionable content scores zero.
var safetyLevels = map[string]float64{
	"VERY_LIKELY":   0,
	"LIKELY":        25,
	"POSSIBLE":      50,
	"UNLIKELY":      75,
	"VERY_UNLIKELY": 100,
}

func lowered(terms ...[]string) []string {
	var out []string
	for _, list := range terms {
		for _, t := range list {
			out = append(out, strings.ToLower(t))
		}
	}
	return out
}

func termMatches(term, keyword string) bool {
	return strings.Contains(term, keyword) || strings.Contains(keyword, term)
}

// EnvironmentalScore rates detected labels and objects against the
// keyword vocabulary, normalized to 0-100 with a multi-match bonus.
func EnvironmentalScore(labels, objects []string) float64 {
	allTerms := lowered(labels, objects)

	var score float64
	matches := 0
	for _, keyword := range environmentalKeywords {
		for _, term := range allTerms {
			if termMatches(term, keyword) {
				score += 10
				matches++
				break
			}
		}
	}

	normalized := score / float64(len(environmentalKeywords)) * 100
	if normalized > 100 {
		normalized = 100
	}

	bonus := float64(matches) * 2
	if bonus > 20 {
		bonus = 20
	}

	total := normalized + bonus
	if total > 100 {
		total = 100
	}
	return total
}

// SafetyScore averages the SafeSearch likelihoods for the adult, racy,
// violence, and medical categories. Unknown or absent levels are skipped;
// with no usable level the image is considered safe.
func SafetyScore(levels map[string]string) float64 {
	categories := []string{"adult", "racy", "violence", "medical"}

	var total float64
	valid := 0
	for _, category := range categories {
		value, ok := safetyLevels[levels[category]]
		if !ok {
			continue
		}
		total += value
		valid++
	}

	if valid == 0 {
		return 100
	}
	return total / float64(valid)
}

// Confidence scores how many detection types returned results.
func Confidence(labels, objects, text []string) float64 {
	var confidence float64

	if len(labels) > 0 {
		confidence += 40
	}
	if len(objects) > 0 {
		confidence += 30
	}
	if len(text) > 0 {
		confidence += 20
	}

	active := 0
	for _, nonEmpty := range []bool{len(labels) > 0, len(objects) > 0, len(text) > 0} {
		if nonEmpty {
			active++
		}
	}
	confidence += float64(active) * 10

	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

// SuggestCategory picks the category whose keyword list overlaps the
// detected terms the most. Returns "" when nothing overlaps. Ties go to
// the first category reaching the max score.
func SuggestCategory(labels, objects []string) string {
	allTerms := lowered(labels, objects)

	best := ""
	bestScore := 0
	for _, mapping := range categoryMappings {
		score := 0
		for _, keyword := range mapping.keywords {
			for _, term := range allTerms {
				if termMatches(term, keyword) {
					score++
				}
			}
		}
		if score > bestScore {
			bestScore = score
			best = mapping.name
		}
	}

	return best
}

// IsSafe requires a 70%+ safety score.
func IsSafe(safetyScore float64) bool {
	return safetyScore >= 70
}

// IsRelevant requires a 30%+ environmental relevance score.
func IsRelevant(environmentalScore float64) bool {
	return environmentalScore >= 30
}
