package completion

import (
	"context"
	"strings"
)

// Контексты, для которых эвристика дописывает фразу.
const (
	ContextExperience = "esperienza lavorativa"
	ContextEducation  = "formazione"
	ContextSkills     = "competenze"
)

const (
	experienceSuffix = " In questa posizione, ho assunto la responsabilità di gestire efficacemente i compiti assegnati."
	educationSuffix  = " Durante questo percorso formativo, ho acquisito competenze teoriche e pratiche nel settore."
	skillsSuffix     = " Questa competenza mi permette di affrontare efficacemente le sfide professionali."
)

var phraseReplacer = strings.NewReplacer(
	"ho fatto", "ho realizzato",
	"ho lavorato", "ho contribuito",
)

// Local - детерминированная эвристика без сети; никогда не возвращает ошибку.
type Local struct{}

// Improve заменяет разговорные обороты и, в зависимости от контекста
// (без учёта регистра), дописывает фразу, если текст ещё не содержит её ключевого слова.
// Для прочих контекстов текст только проходит замены.
func (Local) Improve(_ context.Context, text, contextLabel string) (string, error) {
	out := phraseReplacer.Replace(text)

	switch strings.ToLower(contextLabel) {
	case ContextExperience:
		if !strings.Contains(out, "responsabile") && !strings.Contains(out, "responsabilità") {
			out += experienceSuffix
		}
	case ContextEducation:
		if !strings.Contains(out, "competenz") {
			out += educationSuffix
		}
	case ContextSkills:
		if !strings.Contains(out, "capacità") {
			out += skillsSuffix
		}
	}

	return out, nil
}
