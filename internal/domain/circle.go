package domain

import "time"

// Circle представляет аудио-комнату с хостом и зарегистрированными участниками
type Circle struct {
	ID                string    `json:"id"`
	HostID            string    `json:"host_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	IsLive            bool      `json:"is_live"`
	IsEnded           bool      `json:"is_ended"`
	StartDate         time.Time `json:"start_date"`
	ParticipantsLimit int       `json:"participants_limit"`
	Username          string    `json:"username"` // username хоста
}

// DefaultParticipantsLimit используется если лимит не передан при создании
const DefaultParticipantsLimit = 100

// IsHost возвращает true если пользователь является хостом круга
func (c *Circle) IsHost(userID string) bool {
	return userID != "" && c.HostID == userID
}

// CircleUpdate содержит изменяемые поля круга (nil означает "не менять")
type CircleUpdate struct {
	Title             *string
	Description       *string
	ParticipantsLimit *int
	StartDate         *time.Time
	IsLive            *bool
	IsEnded           *bool
}

// Apply применяет изменения к кругу
func (u CircleUpdate) Apply(c *Circle) {
	if u.Title != nil && *u.Title != "" {
		c.Title = *u.Title
	}
	if u.Description != nil && *u.Description != "" {
		c.Description = *u.Description
	}
	if u.ParticipantsLimit != nil && *u.ParticipantsLimit > 0 {
		c.ParticipantsLimit = *u.ParticipantsLimit
	}
	if u.StartDate != nil {
		c.StartDate = *u.StartDate
	}
	if u.IsLive != nil {
		c.IsLive = *u.IsLive
	}
	if u.IsEnded != nil {
		c.IsEnded = *u.IsEnded
	}
}

// Tag это текстовая метка круга
type Tag = string

// RegisteredUser представляет пользователя, записавшегося на круг
type RegisteredUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ContainsUser проверяет, есть ли пользователь в списке записавшихся
func ContainsUser(users []RegisteredUser, userID string) bool {
	for _, u := range users {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// Flag представляет жалобу пользователя на круг
type Flag struct {
	ID         string    `json:"id"`
	CircleID   string    `json:"circle_id"`
	FlagUserID string    `json:"flag_user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// FlaggedCircle это круг вместе с количеством жалоб (для модерации)
type FlaggedCircle struct {
	Circle
	FlagCount int `json:"flag_count"`
}
