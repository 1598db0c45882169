package sim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// EventRecord is the serialized form of one event in a transcript, kept
// self-describing so transcripts are readable without replaying them.
type EventRecord struct {
	Turn    int             `json:"turn"`
	Type    EventType       `json:"type"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// TranscriptStore appends one JSON line per event to a run transcript.
type TranscriptStore struct {
	file *os.File
}

// NewTranscriptStore opens or creates the file at path for appending.
func NewTranscriptStore(path string) (*TranscriptStore, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript file: %w", err)
	}
	return &TranscriptStore{file: file}, nil
}

// Append marshals the event and writes it as one JSONL record.
func (s *TranscriptStore) Append(turn int, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	record := EventRecord{Turn: turn, Type: evt.Type(), Message: evt.Message(), Data: data}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}

// Close flushes and closes the underlying file.
func (s *TranscriptStore) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// ReadTranscript loads every record from a transcript file.
func ReadTranscript(path string) ([]EventRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript file: %w", err)
	}
	defer f.Close()

	var records []EventRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec EventRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode transcript record: %w", err)
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}
