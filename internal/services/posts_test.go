package services_test

import (
	"sync"
	"testing"

	"feedify/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_WithNestedComments(t *testing.T) {
	db := setupTestDB(t)
	postService := services.NewPostService()

	author := createUser(t, db, "author@test.com", "Author")

	content := "relational queries made easy"
	post, err := postService.CreatePost(db, author.ID, "First post", &content,
		[]string{"nice one", "try includes too"})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Len(t, post.Comments, 2)

	loaded, err := postService.GetPostByID(db, post.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Comments, 2)
	require.NotNil(t, loaded.Author)
	assert.Equal(t, "Author", loaded.Author.DisplayName())
}

func TestGetPosts_IncludesAuthorAndComments(t *testing.T) {
	db := setupTestDB(t)
	postService := services.NewPostService()

	author := createUser(t, db, "author@test.com", "Author")
	post, err := postService.CreatePost(db, author.ID, "with comment", nil, []string{"hi"})
	require.NoError(t, err)

	_, err = postService.AddComment(db, post.ID, "another")
	require.NoError(t, err)

	posts, err := postService.GetPosts(db)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.NotNil(t, posts[0].Author)
	assert.Len(t, posts[0].Comments, 2)
}

func TestAddComment_UnknownPost(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.NewPostService().AddComment(db, 42, "into the void")
	assert.ErrorIs(t, err, services.ErrPostNotFound)
}

func TestLikePost_IncrementsByOne(t *testing.T) {
	db := setupTestDB(t)
	postService := services.NewPostService()

	author := createUser(t, db, "author@test.com", "Author")
	post, err := postService.CreatePost(db, author.ID, "likeable", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, post.Likes)

	liked, err := postService.LikePost(db, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
}

func TestLikePost_RepeatedLikesAllLand(t *testing.T) {
	db := setupTestDB(t)
	postService := services.NewPostService()

	author := createUser(t, db, "author@test.com", "Author")
	post, err := postService.CreatePost(db, author.ID, "popular", nil, nil)
	require.NoError(t, err)

	const likes = 25
	for i := 0; i < likes; i++ {
		_, err := postService.LikePost(db, post.ID)
		require.NoError(t, err)
	}

	final, err := postService.GetPostByID(db, post.ID)
	require.NoError(t, err)
	assert.Equal(t, likes, final.Likes)
}

func TestLikePost_ConcurrentLikesNoLostUpdates(t *testing.T) {
	db := setupTestDB(t)
	postService := services.NewPostService()

	author := createUser(t, db, "author@test.com", "Author")
	post, err := postService.CreatePost(db, author.ID, "viral", nil, nil)
	require.NoError(t, err)

	const likes = 20
	errs := make(chan error, likes)
	var wg sync.WaitGroup
	for i := 0; i < likes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := postService.LikePost(db, post.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	final, err := postService.GetPostByID(db, post.ID)
	require.NoError(t, err)
	assert.Equal(t, likes, final.Likes)
}

func TestLikePost_UnknownPost(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.NewPostService().LikePost(db, 404)
	assert.ErrorIs(t, err, services.ErrPostNotFound)
}

func TestCreatePost_UnknownAuthor(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.NewPostService().CreatePost(db, 9999, "orphan", nil, nil)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
