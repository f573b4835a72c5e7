package service

import "github.com/pribylovaa/cv-service/internal/models"

// LastStep - последний шаг мастера: личные данные, образование, опыт,
// навыки, итог (шаги 0..5).
const LastStep = 5

// State - снимок наблюдаемого состояния редактора.
// CV == nil, пока резюме не загружено (или загрузка завершилась ошибкой).
type State struct {
	CV           *models.CV
	Loading      bool
	ErrorMessage string
	Step         int
	EditMode     bool
}

// clone возвращает снимок, не разделяющий память с редактором.
func (s State) clone() State {
	if s.CV != nil {
		cv := s.CV.Clone()
		s.CV = &cv
	}

	return s
}
