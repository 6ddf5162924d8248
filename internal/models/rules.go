package models

// CategoryRule is one row of the keyword rule table. Patterns are
// case-insensitive regular expressions matched against the transaction
// description.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// RulesConfig represents the structure of the category rules YAML file.
// Table order is match priority: the first rule with a matching pattern wins.
type RulesConfig struct {
	Categories []CategoryRule `yaml:"categories"`
}

// LearnedMappings represents the persisted user-correction file. Keys are
// normalized descriptions, values are category names.
type LearnedMappings struct {
	LearnedMappings map[string]string `json:"learned_mappings"`
}
