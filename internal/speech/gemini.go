package speech

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/pribylovaa/cv-service/internal/config"
	"google.golang.org/genai"
)

// maxAudioBytes - верхняя граница размера записи, передаваемой модели одним запросом.
const maxAudioBytes = 20 << 20

type streamer interface {
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// Gemini распознаёт речь потоковым запросом к Gemini API.
// Без ключа API (models == nil) сообщает PermissionRestricted.
type Gemini struct {
	models streamer
	model  string
	locale string
}

// NewGemini создаёт распознаватель. Пустой APIKey - распознаватель без доступа к модели.
func NewGemini(ctx context.Context, cfg config.AIConfig) (*Gemini, error) {
	const op = "speech/NewGemini"

	g := &Gemini{model: cfg.Model, locale: cfg.Locale}
	if cfg.APIKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	g.models = client.Models
	return g, nil
}

func (g *Gemini) Authorize(context.Context) (Permission, error) {
	if g.models == nil {
		return PermissionRestricted, nil
	}

	return PermissionAuthorized, nil
}

// Recognize отправляет запись целиком и собирает текст из потока ответов.
func (g *Gemini) Recognize(ctx context.Context, audio io.Reader, mimeType string, onPartial func(string)) (string, error) {
	if g.models == nil {
		return "", ErrUnavailable
	}

	data, err := io.ReadAll(io.LimitReader(audio, maxAudioBytes+1))
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	if len(data) == 0 {
		return "", fmt.Errorf("empty audio")
	}

	if len(data) > maxAudioBytes {
		return "", fmt.Errorf("audio exceeds %d bytes", maxAudioBytes)
	}

	contents := []*genai.Content{genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(transcribePrompt(g.locale)),
		genai.NewPartFromBytes(data, mimeType),
	}, genai.RoleUser)}

	var b strings.Builder
	for resp, err := range g.models.GenerateContentStream(ctx, g.model, contents, nil) {
		if err != nil {
			return "", err
		}

		if resp == nil {
			continue
		}

		if chunk := resp.Text(); chunk != "" {
			b.WriteString(chunk)
			if onPartial != nil {
				onPartial(strings.TrimSpace(b.String()))
			}
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("empty transcription")
	}

	return out, nil
}

func transcribePrompt(locale string) string {
	return fmt.Sprintf("Trascrivi fedelmente il parlato di questa registrazione (lingua %s). Restituisci solo il testo trascritto, senza commenti.", locale)
}
