package reviewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// Suggester proposes a category for a transaction description. Suggestions
// never enter the system directly; an accepted one is recorded as a
// correction like any other.
type Suggester interface {
	Suggest(ctx context.Context, description string) (string, error)
}

// GeminiSuggester asks the Gemini API for a category, constrained to the
// closed expense category set. The client is created lazily on first use.
type GeminiSuggester struct {
	apiKey string
	model  string
	logger logging.Logger

	client   *genai.Client
	genModel *genai.GenerativeModel
}

// NewGeminiSuggester creates a suggester for the given API key. An empty
// model selects DefaultGeminiModel.
func NewGeminiSuggester(apiKey, model string, logger logging.Logger) *GeminiSuggester {
	if model == "" {
		model = DefaultGeminiModel
	}
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &GeminiSuggester{apiKey: apiKey, model: model, logger: logger}
}

func (s *GeminiSuggester) ensureClient(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	if s.apiKey == "" {
		return fmt.Errorf("gemini api key not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	s.client = client
	s.genModel = client.GenerativeModel(s.model)
	return nil
}

// Suggest asks the model for one category name. A response that cannot be
// mapped onto the category set is an error, never a new category.
func (s *GeminiSuggester) Suggest(ctx context.Context, description string) (string, error) {
	if err := s.ensureClient(ctx); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Categorize this household bank transaction:
%s

Pick exactly one of the following categories:
%s

Respond with the category name alone, nothing else.`,
		description,
		strings.Join(models.ExpenseCategories(), ", "))

	resp, err := s.genModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category, err := matchCategory(responseText)
	if err != nil {
		return "", err
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldCategory, Value: category},
	).Debug("Gemini suggested a category")
	return category, nil
}

// Close releases the underlying client.
func (s *GeminiSuggester) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	s.genModel = nil
	return err
}

// matchCategory maps free-form model output onto the closed expense category
// set: exact name first, then a category name contained in the response.
func matchCategory(response string) (string, error) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "Category:")
	cleaned = strings.TrimSpace(cleaned)

	for _, category := range models.ExpenseCategories() {
		if strings.EqualFold(cleaned, category) {
			return category, nil
		}
	}
	for _, category := range models.ExpenseCategories() {
		if strings.Contains(strings.ToLower(cleaned), strings.ToLower(category)) {
			return category, nil
		}
	}
	return "", fmt.Errorf("suggestion %q is not a known category", cleaned)
}

// MockSuggester is a Suggester for tests.
type MockSuggester struct {
	Suggestions map[string]string
	Err         error
	Calls       []string
}

func (m *MockSuggester) Suggest(ctx context.Context, description string) (string, error) {
	m.Calls = append(m.Calls, description)
	if m.Err != nil {
		return "", m.Err
	}
	category, ok := m.Suggestions[description]
	if !ok {
		return "", fmt.Errorf("no suggestion for %q", description)
	}
	return category, nil
}
