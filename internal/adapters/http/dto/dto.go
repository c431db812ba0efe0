// Package dto содержит объекты передачи данных HTTP API.
package dto

import (
	"encoding/json"
	"fmt"

	"bloglist/internal/ports/api"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ToInput преобразует запрос во входные данные use case.
func (r RegisterRequest) ToInput() api.RegisterInput {
	return api.RegisterInput{Username: r.Username, Name: r.Name, Password: r.Password}
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateBlogRequest - тело POST /api/blogs. Отсутствующие поля остаются nil.
type CreateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// ToInput преобразует запрос во входные данные use case.
func (r CreateBlogRequest) ToInput() api.CreateBlogInput {
	return api.CreateBlogInput{Title: r.Title, Author: r.Author, URL: r.URL, Likes: r.Likes}
}

// UpdateBlogRequest - тело PUT /api/blogs/:id.
type UpdateBlogRequest struct {
	Title  *string   `json:"title"`
	Author *string   `json:"author"`
	URL    *string   `json:"url"`
	Likes  *int      `json:"likes"`
	User   *OwnerRef `json:"user"`
}

// ToInput преобразует запрос во входные данные use case.
func (r UpdateBlogRequest) ToInput() api.UpdateBlogInput {
	in := api.UpdateBlogInput{Title: r.Title, Author: r.Author, URL: r.URL, Likes: r.Likes}
	if r.User != nil {
		id := r.User.ID
		in.UserID = &id
	}
	return in
}

// CommentRequest - тело POST /api/blogs/:id/comments.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// OwnerRef принимает владельца как строку с id или как объект с полем id,
// поэтому клиент может отправить обратно блог в том виде, в котором его получил.
type OwnerRef struct {
	ID string
}

// UnmarshalJSON реализует json.Unmarshaler.
func (r *OwnerRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		return nil
	}

	var owner struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &owner); err != nil {
		return fmt.Errorf("user must be an id or an object with id: %w", err)
	}
	r.ID = owner.ID
	return nil
}
