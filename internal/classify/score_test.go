package classify

import "testing"

func TestEnvironmentalScoreEmpty(t *testing.T) {
	if got := EnvironmentalScore(nil, nil); got != 0 {
		t.Fatalf("expected 0 got %f", got)
	}
}

func TestEnvironmentalScoreMatches(t *testing.T) {
	score := EnvironmentalScore([]string{"Tree", "Ocean"}, []string{"Recycling bin"})
	if score <= 0 {
		t.Fatalf("expected positive score got %f", score)
	}
	if score > 100 {
		t.Fatalf("score exceeds cap: %f", score)
	}
}

func TestEnvironmentalScoreCapped(t *testing.T) {
	// Feed every keyword back in so the raw score saturates.
	terms := append([]string{}, environmentalKeywords...)
	if got := EnvironmentalScore(terms, nil); got != 100 {
		t.Fatalf("expected capped 100 got %f", got)
	}
}

func TestSafetyScore(t *testing.T) {
	levels := map[string]string{
		"adult":    "VERY_UNLIKELY",
		"racy":     "VERY_UNLIKELY",
		"violence": "UNLIKELY",
		"medical":  "POSSIBLE",
	}
	if got := SafetyScore(levels); got != 81.25 {
		t.Fatalf("expected 81.25 got %f", got)
	}
}

func TestSafetyScoreNoSignal(t *testing.T) {
	if got := SafetyScore(map[string]string{}); got != 100 {
		t.Fatalf("expected 100 got %f", got)
	}
	if got := SafetyScore(map[string]string{"adult": "BOGUS"}); got != 100 {
		t.Fatalf("unknown levels should be skipped, got %f", got)
	}
}

func TestSafetyScoreWorstCase(t *testing.T) {
	levels := map[string]string{
		"adult":    "VERY_LIKELY",
		"racy":     "VERY_LIKELY",
		"violence": "VERY_LIKELY",
		"medical":  "VERY_LIKELY",
	}
	if got := SafetyScore(levels); got != 0 {
		t.Fatalf("expected 0 got %f", got)
	}
}

func TestConfidence(t *testing.T) {
	cases := []struct {
		labels, objects, text []string
		want                  float64
	}{
		{nil, nil, nil, 0},
		{[]string{"tree"}, nil, nil, 50},
		{[]string{"tree"}, []string{"bin"}, nil, 90},
		{[]string{"tree"}, []string{"bin"}, []string{"save the planet"}, 100},
	}
	for _, c := range cases {
		if got := Confidence(c.labels, c.objects, c.text); got != c.want {
			t.Fatalf("Confidence(%v,%v,%v) = %f, want %f", c.labels, c.objects, c.text, got, c.want)
		}
	}
}

func TestSuggestCategory(t *testing.T) {
	got := SuggestCategory([]string{"Beach", "Trash", "Sand"}, nil)
	if got != "beach_cleanup" {
		t.Fatalf("expected beach_cleanup got %q", got)
	}
}

func TestSuggestCategoryNone(t *testing.T) {
	if got := SuggestCategory([]string{"xylophone"}, nil); got != "" {
		t.Fatalf("expected empty got %q", got)
	}
}

func TestSuggestCategoryTieGoesFirst(t *testing.T) {
	// "garden" appears in both tree_planting and community_garden;
	// the earlier mapping wins.
	if got := SuggestCategory([]string{"garden"}, nil); got != "tree_planting" {
		t.Fatalf("expected tree_planting got %q", got)
	}
}

func TestThresholds(t *testing.T) {
	if !IsSafe(70) || IsSafe(69.9) {
		t.Fatalf("safety threshold broken")
	}
	if !IsRelevant(30) || IsRelevant(29.9) {
		t.Fatalf("relevance threshold broken")
	}
}
