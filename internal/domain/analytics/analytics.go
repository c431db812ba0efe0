// Package analytics содержит чистые функции для подсчета статистики по блогам.
//
// Функции не изменяют входной срез и не возвращают ошибок. При равенстве
// лидирует автор, первым достигший максимума при проходе слева направо.
package analytics

import "bloglist/internal/domain/entities"

// Entry - минимальная запись блога, нужная для статистики.
type Entry struct {
	Author string
	Likes  int
}

// AuthorBlogs - автор с наибольшим числом записей.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes - автор с наибольшей суммой лайков.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Report объединяет всю статистику по коллекции.
type Report struct {
	Blogs      int         `json:"blogs"`
	TotalLikes int         `json:"totalLikes"`
	MostBlogs  AuthorBlogs `json:"mostBlogs"`
	MostLikes  AuthorLikes `json:"mostLikes"`
}

// FromBlogs строит записи для статистики из блогов.
func FromBlogs(blogs []*entities.Blog) []Entry {
	entries := make([]Entry, 0, len(blogs))
	for _, b := range blogs {
		if b == nil {
			continue
		}
		entries = append(entries, Entry{Author: b.Author, Likes: b.Likes})
	}
	return entries
}

// Dummy всегда возвращает 1.
func Dummy([]Entry) int {
	return 1
}

// TotalLikes возвращает сумму лайков.
func TotalLikes(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Likes
	}
	return total
}

// MostBlogs возвращает автора с наибольшим числом записей.
func MostBlogs(entries []Entry) AuthorBlogs {
	var top AuthorBlogs
	counts := make(map[string]int, len(entries))

	for _, e := range entries {
		counts[e.Author]++
		if counts[e.Author] > top.Blogs {
			top = AuthorBlogs{Author: e.Author, Blogs: counts[e.Author]}
		}
	}
	return top
}

// MostLikes возвращает автора с наибольшей суммой лайков.
// Автор, у которого сумма ни разу не превысила текущий максимум, лидером не становится,
// поэтому для коллекции без положительных лайков результат пустой.
func MostLikes(entries []Entry) AuthorLikes {
	var top AuthorLikes
	sums := make(map[string]int, len(entries))

	for _, e := range entries {
		sums[e.Author] += e.Likes
		if sums[e.Author] > top.Likes {
			top = AuthorLikes{Author: e.Author, Likes: sums[e.Author]}
		}
	}
	return top
}

// Summarize считает всю статистику за один вызов.
func Summarize(entries []Entry) Report {
	return Report{
		Blogs:      len(entries),
		TotalLikes: TotalLikes(entries),
		MostBlogs:  MostBlogs(entries),
		MostLikes:  MostLikes(entries),
	}
}
