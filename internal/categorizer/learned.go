package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/storage"
	"pvillar/hogarfin/internal/textutils"
)

// LearnedMappingStore holds one account's user corrections: normalized
// description keys mapped to the category the user picked. A learned mapping
// beats every keyword rule, which is how a correction made once keeps
// applying to every future import.
//
// The store is read once per session and flushed right after each Record
// call, so a crash between corrections loses at most the in-flight one.
type LearnedMappingStore struct {
	backend storage.Backend
	key     string
	logger  logging.Logger

	mu       sync.RWMutex
	mappings map[string]string
	loaded   bool
	dirty    bool
}

// NewLearnedMappingStore creates the store for the mappings persisted under
// key, typically tenant.MappingKey(accountKey).
func NewLearnedMappingStore(backend storage.Backend, key string, logger logging.Logger) *LearnedMappingStore {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &LearnedMappingStore{
		backend:  backend,
		key:      key,
		logger:   logger,
		mappings: make(map[string]string),
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *LearnedMappingStore) Name() string {
	return "LearnedMapping"
}

// Load reads the persisted mappings. A blob that was never written is not an
// error; the store starts empty. A blob with an unrecognized top-level shape
// is rejected rather than guessed at.
func (s *LearnedMappingStore) Load(ctx context.Context) error {
	data, err := s.backend.ReadConfig(ctx, s.key)
	if err != nil {
		if storage.IsNotFound(err) {
			s.mu.Lock()
			s.mappings = make(map[string]string)
			s.loaded = true
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("loading learned mappings %s: %w", s.key, err)
	}

	mappings, err := decodeMappings(data)
	if err != nil {
		return fmt.Errorf("loading learned mappings %s: %w", s.key, err)
	}

	s.mu.Lock()
	s.mappings = mappings
	s.loaded = true
	s.dirty = false
	s.mu.Unlock()

	s.logger.WithFields(
		logging.Field{Key: logging.FieldKey, Value: s.key},
		logging.Field{Key: logging.FieldCount, Value: len(mappings)},
	).Debug("Loaded learned mappings")
	return nil
}

// decodeMappings parses the persisted JSON. The only accepted shape is a
// single object with the one field "learned_mappings".
func decodeMappings(data []byte) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("not a JSON object: %w", err)
	}

	inner, ok := raw["learned_mappings"]
	if !ok || len(raw) != 1 {
		return nil, fmt.Errorf("unrecognized mapping file shape")
	}

	mappings := make(map[string]string)
	if err := json.Unmarshal(inner, &mappings); err != nil {
		return nil, fmt.Errorf("learned_mappings is not a string map: %w", err)
	}
	return mappings, nil
}

// Lookup returns the learned category for a description, if one was ever
// recorded. The description is folded to the canonical key first.
func (s *LearnedMappingStore) Lookup(description string) (string, bool) {
	key := textutils.NormalizeKey(description)
	if key == "" {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.mappings[key]
	return category, ok
}

// Classify implements Strategy over the learned mappings.
func (s *LearnedMappingStore) Classify(ctx context.Context, description string) (string, bool, error) {
	category, ok := s.Lookup(description)
	if !ok {
		return "", false, nil
	}

	s.logger.WithFields(
		logging.Field{Key: "strategy", Value: s.Name()},
		logging.Field{Key: logging.FieldCategory, Value: category},
	).Debug("Description matched a learned mapping")
	return category, true, nil
}

// Record upserts a correction and flushes immediately. Last write for a given
// key wins.
func (s *LearnedMappingStore) Record(ctx context.Context, description, category string) error {
	key := textutils.NormalizeKey(description)
	if key == "" {
		return fmt.Errorf("cannot record mapping for empty description")
	}

	s.mu.Lock()
	s.mappings[key] = category
	s.dirty = true
	s.mu.Unlock()

	s.logger.WithFields(
		logging.Field{Key: logging.FieldKey, Value: key},
		logging.Field{Key: logging.FieldCategory, Value: category},
	).Debug("Recorded learned mapping")

	return s.Flush(ctx)
}

// Flush persists the mappings when they have unsaved changes.
func (s *LearnedMappingStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	data, err := json.MarshalIndent(map[string]map[string]string{
		"learned_mappings": s.mappings,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling learned mappings: %w", err)
	}

	if err := s.backend.WriteConfig(ctx, s.key, data); err != nil {
		return fmt.Errorf("saving learned mappings %s: %w", s.key, err)
	}
	s.dirty = false
	return nil
}

// Len returns the number of recorded mappings.
func (s *LearnedMappingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mappings)
}
