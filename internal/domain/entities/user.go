// Package entities определяет сущности домена блогов.
package entities

import "time"

// Ограничения на учетные данные.
const (
	MinUsernameLength = 3
	MinPasswordLength = 3
)

// User - зарегистрированный пользователь.
// Blogs хранит идентификаторы блогов пользователя и служит только обратной ссылкой.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Blogs        []string  `json:"blogs"`
	CreatedAt    time.Time `json:"-"`
}

// Owner возвращает публичную проекцию пользователя для populate.
func (u *User) Owner() *Owner {
	return &Owner{ID: u.ID, Name: u.Name, Username: u.Username}
}

// Owner - разрешенное подмножество полей владельца блога.
type Owner struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// BlogSummary - поля блога, подставляемые в список пользователей.
type BlogSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// UserProfile - пользователь с развернутыми блогами.
type UserProfile struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Blogs    []BlogSummary `json:"blogs"`
}
