package advisor

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLearningPathStripsFencesAndRenumbers(t *testing.T) {
	raw := "```json\n" + `[
		{"step": 4, "title": "Learn Python", "description": "Syntax and data types.", "type": "foundational_skill"},
		{"step": 9, "title": "", "type": "practical_application"},
		{}
	]` + "\n```"

	steps, err := parseLearningPath(raw)
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.Equal(t, PathStep{Step: 1, Title: "Learn Python", Description: "Syntax and data types.", Type: "foundational_skill"}, steps[0])
	assert.Equal(t, PathStep{Step: 2, Title: "Untitled Step", Description: "No description provided.", Type: "practical_application"}, steps[1])
	assert.Equal(t, PathStep{Step: 3, Title: "Untitled Step", Description: "No description provided.", Type: "general_suggestion"}, steps[2])
}

func TestParseLearningPathPlainFence(t *testing.T) {
	steps, err := parseLearningPath("```\n[{\"title\":\"A\"}]\n```")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "A", steps[0].Title)
}

func TestParseLearningPathRejectsNonArrays(t *testing.T) {
	for _, raw := range []string{`{"title":"x"}`, `null`, `not json at all`, `[{"title": "x"`} {
		_, err := parseLearningPath(raw)
		assert.Error(t, err, raw)
	}
}

func TestLooksLikeProse(t *testing.T) {
	assert.True(t, looksLikeProse(strings.Repeat("Start with the basics. ", 5)))
	assert.False(t, looksLikeProse("too short"))
	assert.False(t, looksLikeProse(strings.Repeat("x", 60)+"{"))
}

func TestRawStepTruncates(t *testing.T) {
	long := strings.Repeat("é", 900)
	steps := rawStep(long)
	require.Len(t, steps, 1)
	assert.Equal(t, rawStepType, steps[0].Type)
	assert.Equal(t, "AI Suggestion (Processing Issue)", steps[0].Title)
	assert.Equal(t, 803, utf8.RuneCountInString(steps[0].Description))
	assert.True(t, strings.HasSuffix(steps[0].Description, "..."))

	assert.Equal(t, "[oops", rawStep("[oops")[0].Description)
}
