package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/sashabaranov/go-openai"
)

const (
	minIdeaCount = 1
	maxIdeaCount = 10
	// maxPromptFieldLength bounds each interpolated free-text field.
	maxPromptFieldLength = 200
)

// promptSanitizer strips the characters that could break the prompt out of a
// field-per-line shape or smuggle instructions: CR/LF, semicolons, quotes,
// backslashes.
var promptSanitizer = strings.NewReplacer(
	"\r", "",
	"\n", "",
	";", "",
	`"`, "",
	"'", "",
	`\`, "",
)

// numberedLine matches "1. idea text" style lines in the provider response.
var numberedLine = regexp.MustCompile(`^\d+\.\s*`)

// SuggestionService talks to the text-completion provider for gift ideas.
type SuggestionService struct {
	client  *openai.Client
	timeout time.Duration
}

// NewSuggestionService creates a SuggestionService. An empty API key yields a
// service that reports ErrProviderNotConfigured on use.
func NewSuggestionService(apiKey string, timeout time.Duration) *SuggestionService {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SuggestionService{client: client, timeout: timeout}
}

// Configured reports whether a provider client is available.
func (s *SuggestionService) Configured() bool {
	return s.client != nil
}

// SanitizeForPrompt strips control/injection characters from a free-text
// field and truncates it before interpolation.
func SanitizeForPrompt(text string) string {
	cleaned := strings.TrimSpace(promptSanitizer.Replace(text))
	runes := []rune(cleaned)
	if len(runes) > maxPromptFieldLength {
		cleaned = string(runes[:maxPromptFieldLength])
	}
	return cleaned
}

// ClampIdeaCount bounds the requested idea count to [1, 10] regardless of
// what the caller supplied.
func ClampIdeaCount(n int) int {
	if n < minIdeaCount {
		return minIdeaCount
	}
	if n > maxIdeaCount {
		return maxIdeaCount
	}
	return n
}

// BuildPrompt assembles the provider prompt from recipient attributes, with
// every user-entered field sanitized first.
func BuildPrompt(recipient *models.Recipient, priceMin, priceMax *float64, count int) string {
	count = ClampIdeaCount(count)

	var b strings.Builder
	b.WriteString("You are a helpful gift suggestion assistant. Generate thoughtful gift ideas for the following person:\n\n")
	fmt.Fprintf(&b, "Name: %s %s\n", SanitizeForPrompt(recipient.FirstName), SanitizeForPrompt(recipient.LastName))
	if recipient.Age != nil {
		fmt.Fprintf(&b, "Age: %d\n", *recipient.Age)
	}
	if recipient.Occupation != "" {
		fmt.Fprintf(&b, "Occupation: %s\n", SanitizeForPrompt(recipient.Occupation))
	}
	if recipient.Hobbies != "" {
		fmt.Fprintf(&b, "Hobbies: %s\n", SanitizeForPrompt(recipient.Hobbies))
	}
	if recipient.Likes != "" {
		fmt.Fprintf(&b, "Likes: %s\n", SanitizeForPrompt(recipient.Likes))
	}
	if recipient.Dislikes != "" {
		fmt.Fprintf(&b, "Dislikes: %s\n", SanitizeForPrompt(recipient.Dislikes))
	}
	if priceMin != nil || priceMax != nil {
		fmt.Fprintf(&b, "Price Range: $%.2f - $%.2f\n", deref(priceMin), deref(priceMax))
	}
	fmt.Fprintf(&b, "\nGenerate %d unique and thoughtful gift ideas. Return each idea as a separate numbered item.", count)

	return b.String()
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// ParseIdeas extracts ideas from the provider's raw text. Only lines carrying
// a leading "N." number survive; preamble and commentary are discarded, not
// treated as an error.
func ParseIdeas(text string) []string {
	var ideas []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !numberedLine.MatchString(line) {
			continue
		}
		idea := strings.TrimSpace(numberedLine.ReplaceAllString(line, ""))
		if idea != "" {
			ideas = append(ideas, idea)
		}
	}
	return ideas
}

// GenerateIdeas builds the prompt, calls the provider with the configured
// timeout, and parses the numbered response. Provider failures come back as
// typed errors so callers can distinguish them from an empty idea list.
func (s *SuggestionService) GenerateIdeas(ctx context.Context, recipient *models.Recipient, priceMin, priceMax *float64, count int) ([]string, error) {
	if s.client == nil {
		return nil, ErrProviderNotConfigured
	}

	count = ClampIdeaCount(count)
	prompt := BuildPrompt(recipient, priceMin, priceMax, count)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(
		callCtx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, fmt.Errorf("%w: %v", ErrProviderTimeout, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
	}

	if len(resp.Choices) == 0 {
		return nil, ErrProviderResponse
	}

	return ParseIdeas(resp.Choices[0].Message.Content), nil
}

// SuggestIdeas is the reminder-sweep entry point: count ideas for a
// recipient with no price constraint.
func (s *SuggestionService) SuggestIdeas(ctx context.Context, recipient *models.Recipient, count int) ([]string, error) {
	return s.GenerateIdeas(ctx, recipient, nil, nil, count)
}
