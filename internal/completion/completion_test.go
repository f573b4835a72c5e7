package completion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pribylovaa/cv-service/internal/config"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestLocal_ExperienceScenario(t *testing.T) {
	out, err := Local{}.Improve(context.Background(), "ho fatto il progetto", "esperienza lavorativa")
	require.NoError(t, err)
	require.Contains(t, out, "ho realizzato")
	require.NotContains(t, out, "ho fatto")
	require.True(t, strings.HasSuffix(out,
		"In questa posizione, ho assunto la responsabilità di gestire efficacemente i compiti assegnati."))
	require.Equal(t,
		"ho realizzato il progetto In questa posizione, ho assunto la responsabilità di gestire efficacemente i compiti assegnati.",
		out)
}

func TestLocal_Contexts(t *testing.T) {
	tests := []struct {
		name, text, ctx, want string
	}{
		{
			name: "experience already mentions responsibility",
			text: "ero responsabile del team", ctx: "esperienza lavorativa",
			want: "ero responsabile del team",
		},
		{
			name: "experience label is case-insensitive",
			text: "ho lavorato in team", ctx: "Esperienza Lavorativa",
			want: "ho contribuito in team" + experienceSuffix,
		},
		{
			name: "education",
			text: "laurea in informatica", ctx: "formazione",
			want: "laurea in informatica" + educationSuffix,
		},
		{
			name: "education already mentions skills",
			text: "ho acquisito competenze", ctx: "formazione",
			want: "ho acquisito competenze",
		},
		{
			name: "skills",
			text: "Go", ctx: "competenze",
			want: "Go" + skillsSuffix,
		},
		{
			name: "skills already mention ability",
			text: "capacità di analisi", ctx: "competenze",
			want: "capacità di analisi",
		},
		{
			name: "unknown label only replaces phrases",
			text: "ho fatto cose", ctx: "hobby",
			want: "ho realizzato cose",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Local{}.Improve(context.Background(), tt.text, tt.ctx)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

type fakeGenerator struct {
	gotModel  string
	gotPrompt string
	gotConfig *genai.GenerateContentConfig
	resp      *genai.GenerateContentResponse
	err       error
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotPrompt = contents[0].Parts[0].Text
	f.gotConfig = cfg
	return f.resp, f.err
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(s, genai.RoleModel),
		}},
	}
}

func TestGemini_Improve(t *testing.T) {
	f := &fakeGenerator{resp: textResponse("  Ho guidato il progetto.\n")}
	g := &Gemini{models: f, model: "gemini-2.5-flash", temperature: 0.7, maxTokens: 500}

	out, err := g.Improve(context.Background(), "ho fatto il progetto", "esperienza lavorativa")
	require.NoError(t, err)
	require.Equal(t, "Ho guidato il progetto.", out)

	require.Equal(t, "gemini-2.5-flash", f.gotModel)
	require.Equal(t,
		"Migliora il seguente testo per un curriculum vitae nel contesto di 'esperienza lavorativa':\n\nho fatto il progetto\n\nMiglioramento:",
		f.gotPrompt)
	require.Equal(t, float32(0.7), *f.gotConfig.Temperature)
	require.Equal(t, int32(500), f.gotConfig.MaxOutputTokens)
}

func TestGemini_Errors(t *testing.T) {
	g := &Gemini{models: &fakeGenerator{err: errors.New("unavailable")}}
	_, err := g.Improve(context.Background(), "x", "formazione")
	require.ErrorIs(t, err, ErrCompletion)

	g = &Gemini{models: &fakeGenerator{resp: textResponse("   ")}}
	_, err = g.Improve(context.Background(), "x", "formazione")
	require.ErrorIs(t, err, ErrCompletion)
}

func TestNew_SelectsLocalWithoutKey(t *testing.T) {
	s, err := New(context.Background(), config.AIConfig{})
	require.NoError(t, err)
	require.Equal(t, StrategyLocal, s.Strategy())

	out, err := s.Improve(context.Background(), "ho lavorato", "hobby")
	require.NoError(t, err)
	require.Equal(t, "ho contribuito", out)
}

func TestNew_SelectsGeminiWithKey(t *testing.T) {
	s, err := New(context.Background(), config.AIConfig{APIKey: "test-key", Model: "gemini-2.5-flash"})
	require.NoError(t, err)
	require.Equal(t, StrategyGemini, s.Strategy())
}

func TestService_WrapsErrors(t *testing.T) {
	s := &Service{next: &Gemini{models: &fakeGenerator{err: errors.New("boom")}}, strategy: StrategyGemini}

	_, err := s.Improve(context.Background(), "x", "competenze")
	require.ErrorIs(t, err, ErrCompletion)
}
