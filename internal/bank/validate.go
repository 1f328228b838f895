// Package bank provides question pack validation helpers.
package bank

import (
	"fmt"

	"github.com/dkaul/quizdeck/internal/model"
)

// ValidatePack checks that a pack is usable: a name, at least one
// question, and per question a prompt, two or more options, and a
// correct index inside the option list.
func ValidatePack(pack Pack) error {
	if pack.Name.Get("en") == "" {
		return fmt.Errorf("pack has no name")
	}
	if len(pack.Questions) == 0 {
		return fmt.Errorf("pack has no questions")
	}
	for i, q := range pack.Questions {
		if err := validateQuestion(q); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

func validateQuestion(q model.Question) error {
	if q.Text.Get("en") == "" {
		return fmt.Errorf("empty question text")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("needs at least 2 options, got %d", len(q.Options))
	}
	for i, opt := range q.Options {
		if opt.Get("en") == "" {
			return fmt.Errorf("option %d is empty", i+1)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range", q.CorrectIndex)
	}
	return nil
}
