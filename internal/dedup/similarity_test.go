package dedup

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "Ship API", b: "Ship API", want: 1.0},
		{name: "case and whitespace folded", a: "  Ship API ", b: "ship api", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "blank versus blank", a: "   ", b: "\t", want: 1.0},
		{name: "one empty", a: "", b: "Ship API", want: 0.0},
		{name: "one blank", a: "Ship API", b: "   ", want: 0.0},
		{name: "completely different", a: "abc", b: "xyz", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityEditDistance(t *testing.T) {
	// "kitten" -> "sitting" is the classic distance-3 pair.
	got := Similarity("kitten", "sitting")
	want := 1.0 - 3.0/7.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Similarity(kitten, sitting) = %v, want %v", got, want)
	}
}

func TestSimilarityMultibyte(t *testing.T) {
	// One substituted character out of three; measured per rune, not per
	// byte, the titles stay well below the duplicate threshold.
	got := Similarity("日本語", "日本誤")
	want := 1.0 - 1.0/3.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Similarity(日本語, 日本誤) = %v, want %v", got, want)
	}
	if got >= SimilarityThreshold {
		t.Errorf("Similarity(日本語, 日本誤) = %v, crosses the %v threshold", got, SimilarityThreshold)
	}
}

func TestSimilarityBounds(t *testing.T) {
	inputs := []struct{ a, b string }{
		{"a", "completely unrelated long title"},
		{"Fix the deploy pipeline", "Fix deploy pipeline"},
		{"x", "y"},
		{"", "nonempty"},
		{"same", "same"},
	}

	for _, in := range inputs {
		got := Similarity(in.a, in.b)
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", in.a, in.b, got)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"日本語", "日本誤", 1},
		{"会議", "", 2},
		{"", "会議", 2},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
