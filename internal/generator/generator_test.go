package generator

import (
	"testing"

	"github.com/dkaul/quizdeck/internal/model"
)

func pool(prefix string, n int) []model.Question {
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			Text:         model.Text{"en": prefix + string(rune('a'+i))},
			Options:      []model.Text{{"en": "x"}, {"en": "y"}},
			CorrectIndex: 0,
		}
	}
	return questions
}

func TestPick(t *testing.T) {
	p := New()
	questions := pool("q", 10)

	picked := p.Pick(questions, 5)
	if len(picked) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(picked))
	}
	seen := map[string]bool{}
	for _, q := range picked {
		key := q.Text.Get("en")
		if seen[key] {
			t.Fatalf("duplicate question %q", key)
		}
		seen[key] = true
	}

	// Requesting more than the pool holds caps at the pool size.
	picked = p.Pick(questions, 50)
	if len(picked) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(picked))
	}

	if got := p.Pick(nil, 5); got != nil {
		t.Fatalf("expected nil for empty pool, got %v", got)
	}
	if got := p.Pick(questions, 0); got != nil {
		t.Fatalf("expected nil for zero count, got %v", got)
	}
}

func TestPickMixedDrawsAcrossTopics(t *testing.T) {
	p := New()
	pools := map[string][]model.Question{
		"History": pool("h", 5),
		"Science": pool("s", 5),
	}

	picked := p.PickMixed(pools, 10, nil, 0)
	if len(picked) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(picked))
	}
	seen := map[string]bool{}
	for _, q := range picked {
		key := q.Text.Get("en")
		if seen[key] {
			t.Fatalf("duplicate question %q", key)
		}
		seen[key] = true
	}

	// Exhausted pools stop the draw early.
	picked = p.PickMixed(pools, 50, nil, 0)
	if len(picked) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(picked))
	}
}

func TestPickMixedWeakBias(t *testing.T) {
	p := New()
	pools := map[string][]model.Question{
		"Weak":   pool("w", 1000),
		"Strong": pool("s", 1000),
	}
	weak := map[string]struct{}{"Weak": {}}

	weakCount := 0
	const draws = 1000
	picked := p.PickMixed(pools, draws, weak, 4)
	for _, q := range picked {
		if q.Text.Get("en")[0] == 'w' {
			weakCount++
		}
	}
	// Weight 5 vs 1 makes the weak topic dominate; over 1000 draws the
	// weak share landing below 60% is vanishingly unlikely.
	if weakCount < draws*6/10 {
		t.Fatalf("weak topic drawn %d of %d times, expected a strong bias", weakCount, draws)
	}
}
