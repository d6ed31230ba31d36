package domain

import "github.com/google/uuid"

// Claims - данные пользователя из проверенного токена
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}
