package services

import (
	"testing"

	"campaign-manager/domain/core/entities"

	"github.com/stretchr/testify/assert"
)

var ada = entities.ProfileFields{
	Name:     "Ada Lovelace",
	JobTitle: "Principal Engineer",
	Company:  "Analytical Engines Ltd",
	Location: "London",
	Summary:  "Designing general purpose computing machines since 1843",
}

func fixed(i int) func(int) int {
	return func(int) int { return i }
}

func TestMessageGenerator_Templates(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		contains []string
	}{
		{
			name:  "first template truncates summary to 30",
			index: 0,
			contains: []string{
				"Hi Ada Lovelace,",
				"as Principal Engineer at Analytical Engines Ltd",
				`"Designing general purpose comp..."`,
			},
		},
		{
			name:  "second template uses first company word",
			index: 1,
			contains: []string{
				"Hello Ada Lovelace,",
				"helping professionals in Analytical improve",
				`"Designing general purpose..."`,
			},
		},
		{
			name:  "third template truncates summary to 35",
			index: 2,
			contains: []string{
				"Ada Lovelace,\n",
				`"Designing general purpose computing..."`,
				"your team at Analytical Engines Ltd?",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := NewMessageGenerator(fixed(tt.index)).Generate(ada)

			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}

func TestMessageGenerator_ShortSummaryNotPadded(t *testing.T) {
	f := ada
	f.Summary = "Math"

	msg := NewMessageGenerator(fixed(0)).Generate(f)

	assert.Contains(t, msg, `"Math..."`)
}

func TestMessageGenerator_RandomPickStaysInRange(t *testing.T) {
	g := NewMessageGenerator(nil)

	for i := 0; i < 50; i++ {
		assert.NotEmpty(t, g.Generate(ada))
	}
	assert.Equal(t, 3, g.TemplateCount())
}
