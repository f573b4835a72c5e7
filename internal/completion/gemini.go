package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/pribylovaa/cv-service/internal/config"
	"google.golang.org/genai"
)

// generator - часть genai.Models, используемая стратегией.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini - удалённая стратегия поверх Gemini API.
type Gemini struct {
	models      generator
	model       string
	temperature float32
	maxTokens   int32
}

// NewGemini создаёт клиента Gemini API.
func NewGemini(ctx context.Context, cfg config.AIConfig) (*Gemini, error) {
	const op = "completion/NewGemini"

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Gemini{
		models:      client.Models,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Prompt формирует запрос к модели.
func Prompt(text, contextLabel string) string {
	return fmt.Sprintf("Migliora il seguente testo per un curriculum vitae nel contesto di '%s':\n\n%s\n\nMiglioramento:", contextLabel, text)
}

// Improve отправляет запрос и возвращает ответ без пробелов по краям.
// Ошибка транспорта или пустой ответ - ErrCompletion.
func (g *Gemini) Improve(ctx context.Context, text, contextLabel string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(text, contextLabel)), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: g.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletion, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrCompletion)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", fmt.Errorf("%w: empty response", ErrCompletion)
	}

	return out, nil
}
