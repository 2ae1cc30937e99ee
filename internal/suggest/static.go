package suggest

import (
	"context"
	"strings"
)

type keywordEntry struct {
	keyword string
	skills  []string
}

var defaultKeywords = []keywordEntry{
	{keyword: "music", skills: []string{"Guitar", "Piano", "Music Theory"}},
	{keyword: "guitar", skills: []string{"Guitar", "Music Theory"}},
	{keyword: "language", skills: []string{"Spanish", "French", "Japanese"}},
	{keyword: "travel", skills: []string{"Spanish", "Photography"}},
	{keyword: "code", skills: []string{"Go", "JavaScript", "SQL"}},
	{keyword: "program", skills: []string{"Go", "Python", "JavaScript"}},
	{keyword: "design", skills: []string{"Figma", "Illustration", "UX Research"}},
	{keyword: "photo", skills: []string{"Photography", "Photo Editing"}},
	{keyword: "cook", skills: []string{"Cooking", "Baking"}},
	{keyword: "fitness", skills: []string{"Yoga", "Running"}},
	{keyword: "write", skills: []string{"Creative Writing", "Copywriting"}},
	{keyword: "data", skills: []string{"SQL", "Excel", "Data Analysis"}},
}

// Static answers from a fixed keyword table. It never fails.
type Static struct {
	entries []keywordEntry
}

func NewStatic() *Static {
	return &Static{entries: defaultKeywords}
}

// NewStaticTable builds a Static from keyword -> skills pairs, matched in the
// order given.
func NewStaticTable(pairs ...[2]string) *Static {
	entries := make([]keywordEntry, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, keywordEntry{
			keyword: strings.ToLower(p[0]),
			skills:  strings.Split(p[1], ","),
		})
	}
	return &Static{entries: entries}
}

func (s *Static) Suggest(_ context.Context, prompt string) ([]string, error) {
	p := Normalize(prompt)
	var out []string
	for _, e := range s.entries {
		if strings.Contains(p, e.keyword) {
			out = append(out, e.skills...)
		}
	}
	return Clean(out), nil
}
