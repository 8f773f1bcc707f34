package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// QuizPayload is a model response coerced into the shape that gets stored.
type QuizPayload struct {
	Title         string
	Summary       string
	KeyEntities   KeyEntities
	Sections      []string
	RelatedTopics []string
	Questions     []*Question
}

// NormalizePayload coerces an untrusted JSON object into a QuizPayload.
// It never fails: missing or mistyped fields take their zero value, and quiz
// entries without a prompt, options or answer are dropped.
func NormalizePayload(raw map[string]any) *QuizPayload {
	return &QuizPayload{
		Title:         textValue(raw["title"]),
		Summary:       textValue(raw["summary"]),
		KeyEntities:   normalizeKeyEntities(raw["key_entities"]),
		Sections:      stringList(raw["sections"]),
		RelatedTopics: stringList(raw["related_topics"]),
		Questions:     normalizeQuestions(raw["quiz"]),
	}
}

func normalizeKeyEntities(v any) KeyEntities {
	entities := NewKeyEntities()

	var in map[string]any
	switch m := v.(type) {
	case map[string]any:
		in = m
	case KeyEntities:
		in = m
	default:
		return entities
	}

	for key, value := range in {
		switch key {
		case EntityPeople, EntityOrganizations, EntityLocations:
			if value != nil {
				entities[key] = stringList(value)
			}
		default:
			entities[key] = value
		}
	}
	return entities
}

func normalizeQuestions(v any) []*Question {
	entries, ok := v.([]any)
	if !ok {
		return []*Question{}
	}
	if len(entries) > MaxQuestions {
		entries = entries[:MaxQuestions]
	}

	questions := make([]*Question, 0, len(entries))
	for _, entry := range entries {
		q, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		prompt := strings.TrimSpace(textValue(q["prompt"]))
		if prompt == "" {
			prompt = strings.TrimSpace(textValue(q["question"]))
		}
		options := stringList(q["options"])
		if len(options) > MaxOptions {
			options = options[:MaxOptions]
		}
		answer := strings.TrimSpace(textValue(q["answer"]))

		if prompt == "" || len(options) == 0 || answer == "" {
			continue
		}

		questions = append(questions, &Question{
			Position:    len(questions),
			Prompt:      prompt,
			Options:     options,
			Answer:      answer,
			Difficulty:  ParseDifficulty(textValue(q["difficulty"])),
			Explanation: strings.TrimSpace(textValue(q["explanation"])),
		})
	}
	return questions
}

// textValue returns strings as-is and formats JSON numbers and booleans.
// Objects, arrays and null become "".
func textValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// stringList keeps the elements of a JSON array in order. Strings are kept
// verbatim, nulls dropped and any other element stored as its JSON text.
// A value that is not an array yields an empty list.
func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string{}, t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch s := item.(type) {
			case nil:
			case string:
				out = append(out, s)
			default:
				b, err := json.Marshal(s)
				if err != nil {
					continue
				}
				out = append(out, string(b))
			}
		}
		return out
	default:
		return []string{}
	}
}
