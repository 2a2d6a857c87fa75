package models

import "time"

type Account struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Email     string    `json:"email"`
	PassHash  string    `json:"-"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
}

type Bookmark struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Link        string    `json:"link"`
	OwnerID     int64     `json:"userId"`
}

// * AccountUpdate — частичное обновление аккаунта, nil-поля не изменяются
type AccountUpdate struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// * BookmarkUpdate — частичное обновление закладки
type BookmarkUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link" validate:"omitempty,url"`
}

type Message struct {
	Email   string `json:"to"`
	Purpose string `json:"purpose"`
}
