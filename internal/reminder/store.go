package reminder

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// record is the on-disk shape of a reminder. The set is persisted as a
// plain JSON array of these, most recently due first. Transient display ids
// are never written.
type record struct {
	Text string  `json:"text"`
	Due  float64 `json:"due"`
}

// storeSchemaJSON constrains the on-disk document to an ordered list of
// {text, due} pairs with nothing else in them.
const storeSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text", "due"],
    "properties": {
      "text": {"type": "string", "minLength": 1},
      "due": {"type": "number"}
    },
    "additionalProperties": false
  }
}`

var storeSchema = jsonschema.MustCompileString("rd.schema.json", storeSchemaJSON)

// Store persists the reminder set as a JSON file. Record order on disk is
// the canonical sort order; callers keep the set sorted before every Save.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path. The file need not
// exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the reminder set in disk order. A missing file is an empty
// set, not an error. The document is validated against the store schema
// before any records are accepted.
func (s *Store) Load() ([]Reminder, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reminder file %s: %w", s.path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse reminder file %s: %w", s.path, err)
	}
	if err := storeSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid reminder file %s: %w", s.path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse reminder file %s: %w", s.path, err)
	}

	reminders := make([]Reminder, len(records))
	for i, r := range records {
		reminders[i] = Reminder{Text: r.Text, Due: time.Unix(int64(r.Due), 0)}
	}
	return reminders, nil
}

// Save writes the set in order as {text, due} pairs, due as epoch seconds.
func (s *Store) Save(reminders []Reminder) error {
	records := make([]record, len(reminders))
	for i, r := range reminders {
		records[i] = record{Text: r.Text, Due: float64(r.Due.Unix())}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal reminder file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write reminder file %s: %w", s.path, err)
	}
	return nil
}
