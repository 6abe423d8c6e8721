package sentiment

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "markdown link keeps text",
			input: "feeling [great](https://example.com/post) today",
			want:  "feeling great today",
		},
		{
			name:  "bare url removed",
			input: "check https://example.com/thing please",
			want:  "check please",
		},
		{
			name:  "markdown emphasis flattened",
			input: "I am **so** tired",
			want:  "I am so tired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAnalyzerScore(t *testing.T) {
	a := NewAnalyzer()

	happy := a.Score("I am so happy and excited today, everything is wonderful!")
	if happy.Compound < 0.05 {
		t.Errorf("positive text scored compound %v, want >= 0.05", happy.Compound)
	}

	sad := a.Score("I feel terrible, everything is awful and hopeless.")
	if sad.Compound > -0.05 {
		t.Errorf("negative text scored compound %v, want <= -0.05", sad.Compound)
	}

	if happy.Positive == 0 && happy.Negative == 0 && happy.Neutral == 0 {
		t.Error("component scores were not populated")
	}
}

func TestAnalyzerScoreDeterministic(t *testing.T) {
	a := NewAnalyzer()
	const text = "a perfectly ordinary sentence about the weather"

	first := a.Score(text)
	second := a.Score(text)
	if first != second {
		t.Errorf("Score() not deterministic: %+v vs %+v", first, second)
	}
}
