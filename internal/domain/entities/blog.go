package entities

import "time"

// Blog - запись блога. UserID определяет владельца и не меняется при создании.
// User заполняется только при чтении с populate.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	UserID    string    `json:"-"`
	User      *Owner    `json:"user,omitempty"`
	Comments  []string  `json:"comments"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// OwnedBy сообщает, принадлежит ли блог пользователю.
func (b *Blog) OwnedBy(userID string) bool {
	return userID != "" && b.UserID == userID
}

// Clone возвращает копию блога, не разделяющую срезы и указатели.
func (b *Blog) Clone() *Blog {
	c := *b
	c.Comments = append([]string{}, b.Comments...)
	if b.User != nil {
		owner := *b.User
		c.User = &owner
	}
	return &c
}

// BlogFields - полный набор полей для замены при обновлении.
// UserID == nil оставляет владельца без изменений.
type BlogFields struct {
	Title  string
	Author string
	URL    string
	Likes  int
	UserID *string
}
