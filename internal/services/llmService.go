package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/config"
	"skilltwin/internal/models"
)

const maxAssistRetries = 3

// ContentAssistant drafts blog metadata with an LLM.
type ContentAssistant interface {
	DraftBlogAssist(ctx context.Context, title, content string) (*models.BlogAssist, error)
}

type llmAssistant struct {
	llm llms.Model
}

// NewContentAssistant builds a Gemini backed assistant. Without an API key it
// returns an assistant that always reports Unavailable.
func NewContentAssistant(ctx context.Context, cfg config.LLMConfig) (ContentAssistant, error) {
	if cfg.APIKey == "" {
		log.Info().Msg("LLM API key not set, blog assistant disabled")
		return &llmAssistant{}, nil
	}
	llm, err := googleai.New(ctx, googleai.WithAPIKey(cfg.APIKey), googleai.WithDefaultModel(cfg.Model))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI LLM: %w", err)
	}
	return &llmAssistant{llm: llm}, nil
}

func NewContentAssistantWithModel(llm llms.Model) ContentAssistant {
	return &llmAssistant{llm: llm}
}

func (a *llmAssistant) DraftBlogAssist(ctx context.Context, title, content string) (*models.BlogAssist, error) {
	if a.llm == nil {
		return nil, apperrors.Unavailable("Blog assistant is not configured")
	}

	prompt := fmt.Sprintf(`You help the SkillTwin team publish blog posts about software careers and training.
Write a one or two sentence excerpt (at most 300 characters) and between 3 and 6 short lowercase tags for the post below.
Return ONLY a JSON object with no markdown formatting, shaped like {"excerpt": "string", "tags": ["string"]}.

Title: %s

Content:
%s`, title, truncate(content, 6000))

	for i := 0; i < maxAssistRetries; i++ {
		response, err := llms.GenerateFromSinglePrompt(ctx, a.llm, prompt)
		if err != nil {
			return nil, fmt.Errorf("failed to generate blog assist from LLM: %w", err)
		}

		assist, err := parseBlogAssist(response)
		if err != nil {
			log.Warn().Err(err).Int("retry", i+1).Msg("LLM returned an unusable blog assist, retrying")
			continue
		}
		return assist, nil
	}
	return nil, fmt.Errorf("LLM failed to produce a blog assist after %d attempts", maxAssistRetries)
}

func parseBlogAssist(response string) (*models.BlogAssist, error) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var assist models.BlogAssist
	if err := json.Unmarshal([]byte(cleaned), &assist); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}
	assist.Excerpt = strings.TrimSpace(assist.Excerpt)
	if assist.Excerpt == "" {
		return nil, fmt.Errorf("LLM response has no excerpt")
	}

	tags := make([]string, 0, len(assist.Tags))
	seen := make(map[string]struct{}, len(assist.Tags))
	for _, tag := range assist.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if _, dup := seen[tag]; tag == "" || dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	assist.Tags = tags
	return &assist, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
