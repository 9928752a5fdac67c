package service

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"alcyxob/coach-platform/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPostNotFound         = errors.New("post not found")
	ErrPostAccessDenied     = errors.New("only the author can delete a post")
	ErrStorageUnavailable   = errors.New("image storage is not configured")
	ErrUploadURLError       = errors.New("failed to generate upload URL")
	ErrInvalidImageKey      = errors.New("image key does not belong to this user")
	ErrUnsupportedImageType = errors.New("unsupported image content type")
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
	maxPostLength    = 2000
)

// UploadURLResponse is a presigned upload target and the key to report back.
type UploadURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PostView is a post as seen by one viewer.
type PostView struct {
	domain.Post
	LikeCount int    `json:"likeCount"`
	LikedByMe bool   `json:"likedByMe"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

type FeedService interface {
	CreatePost(ctx context.Context, userID primitive.ObjectID, content, imageKey string) (*PostView, error)
	// ListPosts returns up to limit posts, newest first.
	ListPosts(ctx context.Context, viewerID primitive.ObjectID, limit int) ([]PostView, error)
	ToggleLike(ctx context.Context, userID, postID primitive.ObjectID) (*PostView, error)
	RequestImageUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	// DeletePost removes the author's post and its image object.
	DeletePost(ctx context.Context, userID, postID primitive.ObjectID) error
}

type feedService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage // nil when object storage is disabled
	now         clock
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository, fileStorage storage.FileStorage) FeedService {
	return &feedService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		now:         utcNow,
	}
}

func imagePrefix(userID primitive.ObjectID) string {
	return path.Join("feed", userID.Hex()) + "/"
}

func (s *feedService) CreatePost(ctx context.Context, userID primitive.ObjectID, content, imageKey string) (*PostView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("post content is required")
	}
	if len(content) > maxPostLength {
		return nil, validationError("post longer than %d bytes", maxPostLength)
	}
	if imageKey != "" && !strings.HasPrefix(imageKey, imagePrefix(userID)) {
		return nil, ErrInvalidImageKey
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	post := &domain.Post{
		AuthorID:   userID,
		AuthorName: author.Name,
		Content:    content,
		ImageKey:   imageKey,
	}
	if _, err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	view := s.view(ctx, *post, userID)
	return &view, nil
}

func (s *feedService) ListPosts(ctx context.Context, viewerID primitive.ObjectID, limit int) ([]PostView, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	posts, err := s.postRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]PostView, len(posts))
	for i, p := range posts {
		views[i] = s.view(ctx, p, viewerID)
	}
	return views, nil
}

func (s *feedService) ToggleLike(ctx context.Context, userID, postID primitive.ObjectID) (*PostView, error) {
	post, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	view := s.view(ctx, *post, userID)
	return &view, nil
}

// view decorates a post for the viewer. A failed presign only drops the image.
func (s *feedService) view(ctx context.Context, p domain.Post, viewerID primitive.ObjectID) PostView {
	v := PostView{
		Post:      p,
		LikeCount: p.LikeCount(),
		LikedByMe: p.IsLikedBy(viewerID),
	}
	if p.ImageKey != "" && s.fileStorage != nil {
		imageURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, p.ImageKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			log.Warnf("presign image of post %s: %s", p.ID.Hex(), err)
		} else {
			v.ImageURL = imageURL
		}
	}
	return v
}

func (s *feedService) RequestImageUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageUnavailable
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := strings.CutPrefix(contentType, "image/")
	if !ok || ext == "" || strings.ContainsAny(ext, "/;") {
		return nil, ErrUnsupportedImageType
	}

	objectKey := imagePrefix(userID) + fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}
	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		ExpiresAt: s.now().Add(storage.DefaultPresignedURLExpiry),
	}, nil
}

func (s *feedService) DeletePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != userID {
		return ErrPostAccessDenied
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	// the post is gone either way; an orphaned object only costs storage
	if post.ImageKey != "" && s.fileStorage != nil {
		if err := s.fileStorage.DeleteObject(ctx, post.ImageKey); err != nil {
			log.Warnf("post %s deleted but image %s was not: %s", postID.Hex(), post.ImageKey, err)
		}
	}
	return nil
}
