package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice is stored as a JSON array. Value returns a string so that
// Postgres receives text it can cast to jsonb rather than bytea.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	raw, err := jsonBytes(value, "StringSlice")
	if err != nil {
		return err
	}
	if raw == nil {
		*s = StringSlice{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	*s = out
	return nil
}

// JSONObject is stored as a JSON object.
type JSONObject map[string]any

func (o JSONObject) Value() (driver.Value, error) {
	if o == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (o *JSONObject) Scan(value interface{}) error {
	raw, err := jsonBytes(value, "JSONObject")
	if err != nil {
		return err
	}
	if raw == nil {
		*o = JSONObject{}
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	if out == nil {
		out = map[string]any{}
	}
	*o = out
	return nil
}

// jsonBytes returns nil for NULL, empty text and a literal "null".
func jsonBytes(value interface{}, typeName string) ([]byte, error) {
	var b []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, errors.New(typeName + " Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return b, nil
}

// Quiz is a row of the quizzes table.
type Quiz struct {
	ID            int64       `db:"id"`
	URL           string      `db:"url"`
	Title         string      `db:"title"`
	Summary       string      `db:"summary"`
	KeyEntities   JSONObject  `db:"key_entities"`
	Sections      StringSlice `db:"sections"`
	RelatedTopics StringSlice `db:"related_topics"`
	RawHTML       string      `db:"raw_html"`
	CreatedAt     time.Time   `db:"created_at"`
}

// Question is a row of the questions table.
type Question struct {
	ID          int64          `db:"id"`
	QuizID      int64          `db:"quiz_id"`
	Position    int            `db:"position"`
	Prompt      string         `db:"prompt"`
	Options     StringSlice    `db:"options"`
	Answer      string         `db:"answer"`
	Difficulty  sql.NullString `db:"difficulty"`
	Explanation string         `db:"explanation"`
}

// QuizSummary is the projection used for the history listing.
type QuizSummary struct {
	ID        int64     `db:"id"`
	URL       string    `db:"url"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}
