package memory

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type postRepository struct {
	mu    sync.RWMutex
	posts []*domain.Post // append order, oldest first
}

// NewPostRepository creates an in-memory repository.PostRepository.
func NewPostRepository() repository.PostRepository {
	return &postRepository{}
}

func (r *postRepository) Create(_ context.Context, post *domain.Post) (primitive.ObjectID, error) {
	if post.AuthorID.IsZero() || post.Content == "" {
		return primitive.NilObjectID, errors.New("post requires authorId and content")
	}
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append(r.posts, post.Clone())
	return post.ID, nil
}

func (r *postRepository) find(id primitive.ObjectID) *domain.Post {
	for _, p := range r.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *postRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.find(id)
	if p == nil {
		return nil, repository.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *postRepository) ListRecent(_ context.Context, limit int) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Post{}
	for i := len(r.posts) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, *r.posts[i].Clone())
	}
	return out, nil
}

func (r *postRepository) ToggleLike(_ context.Context, postID, userID primitive.ObjectID) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.find(postID)
	if p == nil {
		return nil, repository.ErrNotFound
	}
	unliked := false
	for i, id := range p.LikedBy {
		if id == userID {
			p.LikedBy = append(p.LikedBy[:i], p.LikedBy[i+1:]...)
			unliked = true
			break
		}
	}
	if !unliked {
		p.LikedBy = append(p.LikedBy, userID)
	}
	return p.Clone(), nil
}

func (r *postRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
