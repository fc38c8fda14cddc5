package ai

import (
	"context"

	"github.com/idiombridge/idiombridge/plugin/langid"
)

// MockEquivalentFinder is a test double for EquivalentFinder.
type MockEquivalentFinder struct {
	Equivalents []Equivalent
	Err         error

	Calls      int
	LastIdiom  string
	LastSource langid.Language
}

var _ EquivalentFinder = (*MockEquivalentFinder)(nil)

func (m *MockEquivalentFinder) Find(_ context.Context, idiom string, source langid.Language, _ []langid.Language) ([]Equivalent, error) {
	m.Calls++
	m.LastIdiom = idiom
	m.LastSource = source
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Equivalents, nil
}
