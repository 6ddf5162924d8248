// Package store loads and saves the category rule table. The table is
// static configuration: read once at startup, never modified by the
// ingestion path. User corrections live in the learned mapping store, not
// here.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// RuleStore manages loading and saving of the category rule table.
type RuleStore struct {
	RulesFile string
}

// NewRuleStore creates a store for the rule table. An empty rulesFile means
// the default name "categories.yaml" searched in the standard locations.
func NewRuleStore(rulesFile string) *RuleStore {
	return &RuleStore{RulesFile: rulesFile}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for config files
	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
	}

	// Try each location
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/hogarfin/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "hogarfin", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules loads the ordered rule table from the YAML file. A missing file
// is not an error: the built-in table is returned, so a fresh install
// categorizes out of the box.
func (s *RuleStore) LoadRules() ([]models.CategoryRule, error) {
	filename := s.RulesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField(logging.FieldFile, filename).
				Debug("Rules file not found, using built-in table")
			return DefaultRules(), nil
		}
		return nil, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	// Proper structure: "categories: [...]"
	var config models.RulesConfig
	if err := yaml.Unmarshal(data, &config); err == nil && len(config.Categories) > 0 {
		log.WithField(logging.FieldFile, filePath).
			WithField(logging.FieldCount, len(config.Categories)).
			Debug("Loaded category rules")
		return config.Categories, nil
	}

	// Fallback: a bare array without the top-level key
	var rules []models.CategoryRule
	if err := yaml.Unmarshal(data, &rules); err == nil && len(rules) > 0 {
		log.WithField(logging.FieldFile, filePath).
			WithField(logging.FieldCount, len(rules)).
			Debug("Loaded category rules from bare array")
		return rules, nil
	}

	return nil, fmt.Errorf("error parsing rules file %s: unrecognized structure", filePath)
}

// SaveRules writes the rule table as YAML. When the store has no explicit
// path and no file exists in the standard locations, config/categories.yaml
// is created.
func (s *RuleStore) SaveRules(rules []models.CategoryRule) error {
	filename := s.RulesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("error resolving rules file: %w", err)
		}
		if filepath.IsAbs(filename) {
			filePath = filename
		} else {
			filePath = filepath.Join("config", filename)
		}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(models.RulesConfig{Categories: rules})
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}

	if err := os.WriteFile(filePath, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}

	log.WithField(logging.FieldFile, filePath).
		WithField(logging.FieldCount, len(rules)).
		Debug("Saved category rules")
	return nil
}

// Shadow records a trigger pattern that can never win because an earlier
// rule declares the identical pattern.
type Shadow struct {
	Pattern          string
	WinningCategory  string
	ShadowedCategory string
}

// ShadowedTriggers reports duplicate patterns across the table. Overlap is
// legal (table order decides the winner); exact duplicates in later rules
// are dead configuration worth surfacing.
func ShadowedTriggers(rules []models.CategoryRule) []Shadow {
	var shadows []Shadow
	firstOwner := make(map[string]string)

	for _, rule := range rules {
		for _, pattern := range rule.Patterns {
			owner, seen := firstOwner[pattern]
			if !seen {
				firstOwner[pattern] = rule.Name
				continue
			}
			if owner != rule.Name {
				shadows = append(shadows, Shadow{
					Pattern:          pattern,
					WinningCategory:  owner,
					ShadowedCategory: rule.Name,
				})
			}
		}
	}
	return shadows
}
