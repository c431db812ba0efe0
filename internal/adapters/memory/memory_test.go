package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloglist/internal/adapters/memory"
	"bloglist/internal/domain/entities"
)

func seedUser(t *testing.T, store *memory.Store, username string) *entities.User {
	t.Helper()
	user, err := store.Users().Create(context.Background(), &entities.User{Username: username, Name: username, PasswordHash: "hash"})
	require.NoError(t, err)
	return user
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	users := store.Users()

	root := seedUser(t, store, "root")
	assert.NotEmpty(t, root.ID)
	assert.Equal(t, []string{}, root.Blogs)

	_, err := users.Create(ctx, &entities.User{Username: "root", PasswordHash: "other"})
	require.ErrorIs(t, err, entities.ErrUsernameTaken)

	byName, err := users.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "hash", byName.PasswordHash)

	_, err = users.FindByID(ctx, "missing")
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	require.ErrorIs(t, users.AppendBlog(ctx, "missing", "b1"), entities.ErrUserNotFound)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	root := seedUser(t, store, "root")

	root.Username = "mutated"
	stored, err := store.Users().FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, "root", stored.Username)

	blog, err := store.Blogs().Create(ctx, &entities.Blog{Title: "t", Author: "a", URL: "u", UserID: root.ID, Comments: []string{}})
	require.NoError(t, err)
	blog.Comments = append(blog.Comments, "leak")

	again, err := store.Blogs().FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Comments)
}

func TestBlogLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	root := seedUser(t, store, "root")
	other := seedUser(t, store, "hellas")
	blogs := store.Blogs()

	_, err := blogs.Create(ctx, &entities.Blog{Title: "t", UserID: "ghost"})
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	first, err := blogs.Create(ctx, &entities.Blog{Title: "first", Author: "a", URL: "u", UserID: root.ID})
	require.NoError(t, err)
	require.NoError(t, store.Users().AppendBlog(ctx, root.ID, first.ID))
	second, err := blogs.Create(ctx, &entities.Blog{Title: "second", Author: "a", URL: "u", UserID: root.ID})
	require.NoError(t, err)
	require.NoError(t, store.Users().AppendBlog(ctx, root.ID, second.ID))

	all, err := blogs.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, &entities.Owner{ID: root.ID, Name: "root", Username: "root"}, all[0].User)

	updated, err := blogs.Update(ctx, first.ID, entities.BlogFields{Title: "renamed", Author: "b", URL: "v", Likes: 4, UserID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, other.ID, updated.User.ID)

	ghost := "ghost"
	_, err = blogs.Update(ctx, first.ID, entities.BlogFields{UserID: &ghost})
	require.ErrorIs(t, err, entities.ErrUserNotFound)
	_, err = blogs.Update(ctx, "missing", entities.BlogFields{})
	require.ErrorIs(t, err, entities.ErrBlogNotFound)

	commented, err := blogs.AppendComment(ctx, second.ID, "one")
	require.NoError(t, err)
	commented, err = blogs.AppendComment(ctx, second.ID, "two")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, commented.Comments)

	require.NoError(t, blogs.Delete(ctx, second.ID))
	require.ErrorIs(t, blogs.Delete(ctx, second.ID), entities.ErrNotFound)

	user, err := store.Users().FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, user.Blogs, "back-reference is left dangling")

	profiles, err := store.Users().FindAllProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, []entities.BlogSummary{{ID: first.ID, Title: "renamed", Author: "b", URL: "v"}}, profiles[0].Blogs)
	assert.Empty(t, profiles[1].Blogs)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedUser(t, store, "root")

	require.NoError(t, store.Reset(ctx))
	require.NoError(t, store.Ping(ctx))

	profiles, err := store.Users().FindAllProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestConcurrentDeleteHasOneWinner(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	root := seedUser(t, store, "root")
	blog, err := store.Blogs().Create(ctx, &entities.Blog{Title: "t", Author: "a", URL: "u", UserID: root.ID})
	require.NoError(t, err)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Blogs().Delete(ctx, blog.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, entities.ErrNotFound)
	}
	assert.Equal(t, 1, succeeded)
}
