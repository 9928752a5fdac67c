package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockFileStorage struct {
	mock.Mock
}

func (m *mockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

func TestFeedService_PostsNewestFirst(t *testing.T) {
	store := newTestStore()
	feed := NewFeedService(store.Posts, store.Users, nil)
	ctx := context.Background()
	author := createUser(t, store, domain.RoleAthlete)

	for _, content := range []string{"first", "second", "third"} {
		_, err := feed.CreatePost(ctx, author.ID, content, "")
		require.NoError(t, err)
	}

	posts, err := feed.ListPosts(ctx, author.ID, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "third", posts[0].Content)
	assert.Equal(t, "second", posts[1].Content)
	assert.Equal(t, author.Name, posts[0].AuthorName)

	_, err = feed.CreatePost(ctx, author.ID, "  ", "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestFeedService_ToggleLike(t *testing.T) {
	store := newTestStore()
	feed := NewFeedService(store.Posts, store.Users, nil)
	ctx := context.Background()
	author := createUser(t, store, domain.RoleCoach)
	fan := createUser(t, store, domain.RoleAthlete)

	post, err := feed.CreatePost(ctx, author.ID, "new PR today", "")
	require.NoError(t, err)

	liked, err := feed.ToggleLike(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikeCount)
	assert.True(t, liked.LikedByMe)

	unliked, err := feed.ToggleLike(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.LikeCount)
	assert.False(t, unliked.LikedByMe)

	_, err = feed.ToggleLike(ctx, fan.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFeedService_ImageUpload(t *testing.T) {
	store := newTestStore()
	files := &mockFileStorage{}
	feed := NewFeedService(store.Posts, store.Users, files)
	ctx := context.Background()
	author := createUser(t, store, domain.RoleAthlete)

	files.On("GeneratePresignedUploadURL", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "feed/"+author.ID.Hex()+"/") && strings.HasSuffix(key, ".png")
	}), "image/png", storage.DefaultPresignedURLExpiry).Return("https://upload.example/put", nil).Once()

	upload, err := feed.RequestImageUpload(ctx, author.ID, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://upload.example/put", upload.UploadURL)

	files.On("GeneratePresignedDownloadURL", ctx, upload.ObjectKey, storage.DefaultPresignedURLExpiry).
		Return("https://download.example/get", nil).Once()

	post, err := feed.CreatePost(ctx, author.ID, "look at this", upload.ObjectKey)
	require.NoError(t, err)
	assert.Equal(t, "https://download.example/get", post.ImageURL)

	_, err = feed.CreatePost(ctx, author.ID, "not mine", "feed/"+primitive.NewObjectID().Hex()+"/x.png")
	assert.ErrorIs(t, err, ErrInvalidImageKey)

	_, err = feed.RequestImageUpload(ctx, author.ID, "video/mp4")
	assert.ErrorIs(t, err, ErrUnsupportedImageType)

	files.AssertExpectations(t)
}

func TestFeedService_StorageFailures(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	author := createUser(t, store, domain.RoleAthlete)

	_, err := NewFeedService(store.Posts, store.Users, nil).RequestImageUpload(ctx, author.ID, "image/jpeg")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	files := &mockFileStorage{}
	feed := NewFeedService(store.Posts, store.Users, files)
	files.On("GeneratePresignedUploadURL", ctx, mock.Anything, "image/jpeg", mock.Anything).
		Return("", errors.New("no credentials")).Once()
	_, err = feed.RequestImageUpload(ctx, author.ID, "image/jpeg")
	assert.ErrorIs(t, err, ErrUploadURLError)

	// a failing presign drops the image but keeps the post
	key := imagePrefix(author.ID) + "broken.jpeg"
	files.On("GeneratePresignedDownloadURL", ctx, key, mock.Anything).Return("", errors.New("boom"))
	post, err := feed.CreatePost(ctx, author.ID, "still here", key)
	require.NoError(t, err)
	assert.Empty(t, post.ImageURL)
	files.AssertExpectations(t)
}

func TestFeedService_DeletePost(t *testing.T) {
	store := newTestStore()
	files := &mockFileStorage{}
	feed := NewFeedService(store.Posts, store.Users, files)
	ctx := context.Background()
	author := createUser(t, store, domain.RoleAthlete)
	other := createUser(t, store, domain.RoleCoach)

	key := imagePrefix(author.ID) + "pr.png"
	files.On("GeneratePresignedDownloadURL", ctx, key, mock.Anything).Return("https://download.example/get", nil)
	post, err := feed.CreatePost(ctx, author.ID, "deadlift PR", key)
	require.NoError(t, err)

	assert.ErrorIs(t, feed.DeletePost(ctx, other.ID, post.ID), ErrPostAccessDenied)

	files.On("DeleteObject", ctx, key).Return(nil).Once()
	require.NoError(t, feed.DeletePost(ctx, author.ID, post.ID))
	assert.ErrorIs(t, feed.DeletePost(ctx, author.ID, post.ID), ErrPostNotFound)

	posts, err := feed.ListPosts(ctx, author.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
	files.AssertExpectations(t)
}
