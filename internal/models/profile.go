package models

import "time"

// UserProfile - профиль пользователя в коллекции users.
// UserID совпадает с идентификатором документа.
type UserProfile struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
