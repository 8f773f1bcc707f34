package domain

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func validEntry(i int) map[string]any {
	return map[string]any{
		"prompt":  fmt.Sprintf("Question %d?", i),
		"options": []any{"A", "B", "C", "D", "E"},
		"answer":  "A",
	}
}

func TestNormalizePayload_MissingKeyEntities(t *testing.T) {
	p := NormalizePayload(decode(t, `{"title":"Alan Turing"}`))

	assert.Equal(t, "Alan Turing", p.Title)
	assert.Equal(t, "", p.Summary)
	assert.Equal(t, KeyEntities{
		EntityPeople:        []string{},
		EntityOrganizations: []string{},
		EntityLocations:     []string{},
	}, p.KeyEntities)
	assert.Equal(t, []string{}, p.Sections)
	assert.Equal(t, []string{}, p.RelatedTopics)
	assert.Empty(t, p.Questions)
}

func TestNormalizePayload_KeyEntitiesPartialAndExtra(t *testing.T) {
	p := NormalizePayload(decode(t, `{
		"key_entities": {
			"people": ["Alan Turing", "Alonzo Church"],
			"events": ["World War II"]
		}
	}`))

	assert.Equal(t, []string{"Alan Turing", "Alonzo Church"}, p.KeyEntities[EntityPeople])
	assert.Equal(t, []string{}, p.KeyEntities[EntityOrganizations])
	assert.Equal(t, []string{}, p.KeyEntities[EntityLocations])
	assert.Equal(t, []any{"World War II"}, p.KeyEntities["events"])
}

func TestNormalizePayload_KeyEntitiesNotAnObject(t *testing.T) {
	p := NormalizePayload(decode(t, `{"key_entities": ["Alan Turing"]}`))
	assert.Equal(t, NewKeyEntities(), p.KeyEntities)
}

func TestNormalizePayload_ListsPassThrough(t *testing.T) {
	p := NormalizePayload(decode(t, `{
		"sections": ["Early life", "Career", 1936, null],
		"related_topics": "not a list"
	}`))

	assert.Equal(t, []string{"Early life", "Career", "1936"}, p.Sections)
	assert.Equal(t, []string{}, p.RelatedTopics)
}

func TestNormalizePayload_AtMostTenQuestionsFourOptions(t *testing.T) {
	entries := make([]any, 0, 15)
	for i := 0; i < 15; i++ {
		entries = append(entries, validEntry(i))
	}

	p := NormalizePayload(map[string]any{"quiz": entries})

	require.Len(t, p.Questions, MaxQuestions)
	for i, q := range p.Questions {
		assert.LessOrEqual(t, len(q.Options), MaxOptions)
		assert.Equal(t, []string{"A", "B", "C", "D"}, q.Options)
		assert.Equal(t, i, q.Position)
		assert.Equal(t, fmt.Sprintf("Question %d?", i), q.Prompt)
	}
}

func TestNormalizePayload_OnlyFirstTenEntriesConsidered(t *testing.T) {
	entries := make([]any, 0, 12)
	for i := 0; i < 10; i++ {
		entries = append(entries, map[string]any{"prompt": "broken"})
	}
	entries = append(entries, validEntry(10), validEntry(11))

	p := NormalizePayload(map[string]any{"quiz": entries})
	assert.Empty(t, p.Questions)
}

func TestNormalizePayload_DropsIncompleteEntries(t *testing.T) {
	p := NormalizePayload(decode(t, `{"quiz": [
		{"prompt": "Who?", "options": ["a", "b"], "answer": ""},
		{"prompt": "Who?", "options": ["a", "b"]},
		{"prompt": "Who?", "options": [], "answer": "a"},
		{"prompt": "   ", "options": ["a"], "answer": "a"},
		{"options": ["a"], "answer": "a"},
		{"prompt": "Who?", "options": ["a", "b"], "answer": "   "},
		"not an object",
		{"question": "  Where?  ", "options": ["x", "y"], "answer": " x ", "explanation": " Because. "}
	]}`))

	require.Len(t, p.Questions, 1)
	q := p.Questions[0]
	assert.Equal(t, "Where?", q.Prompt)
	assert.Equal(t, []string{"x", "y"}, q.Options)
	assert.Equal(t, "x", q.Answer)
	assert.Equal(t, "Because.", q.Explanation)
	assert.Equal(t, Difficulty(""), q.Difficulty)
	assert.Equal(t, 0, q.Position)
}

func TestNormalizePayload_PromptPreferredOverQuestion(t *testing.T) {
	p := NormalizePayload(decode(t, `{"quiz": [
		{"prompt": "From prompt", "question": "From question", "options": ["a"], "answer": "a"}
	]}`))
	require.Len(t, p.Questions, 1)
	assert.Equal(t, "From prompt", p.Questions[0].Prompt)
}

func TestNormalizePayload_NumericAnswer(t *testing.T) {
	p := NormalizePayload(decode(t, `{"quiz": [
		{"prompt": "Year?", "options": [1912, 1936], "answer": 1912}
	]}`))
	require.Len(t, p.Questions, 1)
	assert.Equal(t, "1912", p.Questions[0].Answer)
	assert.Equal(t, []string{"1912", "1936"}, p.Questions[0].Options)
}

func TestNormalizePayload_Difficulty(t *testing.T) {
	tests := []struct {
		in   any
		want Difficulty
	}{
		{"Hard", DifficultyHard},
		{"EASY", DifficultyEasy},
		{"medium", DifficultyMedium},
		{"extreme", ""},
		{"", ""},
		{3, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			entry := validEntry(0)
			entry["difficulty"] = tt.in
			p := NormalizePayload(map[string]any{"quiz": []any{entry}})
			require.Len(t, p.Questions, 1)
			assert.Equal(t, tt.want, p.Questions[0].Difficulty)
		})
	}
}

func TestNormalizePayload_QuizNotAList(t *testing.T) {
	p := NormalizePayload(decode(t, `{"quiz": {"prompt": "x"}}`))
	assert.NotNil(t, p.Questions)
	assert.Empty(t, p.Questions)
}

func TestNormalizePayload_NilInput(t *testing.T) {
	p := NormalizePayload(nil)
	assert.Equal(t, NewKeyEntities(), p.KeyEntities)
	assert.Empty(t, p.Questions)
}
