package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloglist/internal/app"
	"bloglist/internal/domain/analytics"
	"bloglist/internal/domain/entities"
)

func TestStatsSummarize(t *testing.T) {
	ctx := context.Background()

	t.Run("report over stored blogs", func(t *testing.T) {
		blogs := new(mockBlogRepository)
		blogs.On("FindAll", ctx).Return([]*entities.Blog{
			{Author: "Michael Chan", Likes: 7},
			{Author: "Edsger W. Dijkstra", Likes: 5},
			{Author: "Edsger W. Dijkstra", Likes: 12},
			{Author: "Robert C. Martin", Likes: 10},
			{Author: "Robert C. Martin", Likes: 0},
			{Author: "Robert C. Martin", Likes: 2},
		}, nil)

		report, err := app.NewStatsUseCase(blogs).Summarize(ctx)
		require.NoError(t, err)

		assert.Equal(t, analytics.Report{
			Blogs:      6,
			TotalLikes: 36,
			MostBlogs:  analytics.AuthorBlogs{Author: "Robert C. Martin", Blogs: 3},
			MostLikes:  analytics.AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17},
		}, report)
		blogs.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		blogs := new(mockBlogRepository)
		blogs.On("FindAll", ctx).Return(nil, ErrDatabaseConnection)

		_, err := app.NewStatsUseCase(blogs).Summarize(ctx)
		require.ErrorIs(t, err, ErrDatabaseConnection)
		assert.Equal(t, entities.KindInternal, entities.KindOf(err))
	})
}
