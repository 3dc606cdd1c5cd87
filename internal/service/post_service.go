package service

import (
	"context"
	"encoding/json"
	"time"

	"goblog/internal/model"
	"goblog/internal/pkg"
	"goblog/internal/repository/mysql"

	"go.uber.org/zap"
)

// DateLayout is the display format stamped on a post at creation.
const DateLayout = "Jan 02, 2006"

type PostService struct {
	posts  *mysql.PostRepository
	events *pkg.EventProducer // nil when no brokers are configured
	logger *zap.Logger
}

func NewPostService(posts *mysql.PostRepository, events *pkg.EventProducer, logger *zap.Logger) *PostService {
	return &PostService{posts: posts, events: events, logger: logger}
}

func (s *PostService) Create(ctx context.Context, authorID uint, title, subtitle, body, imgURL string) (*model.Post, error) {
	post := &model.Post{
		AuthorID: authorID,
		Title:    title,
		Subtitle: subtitle,
		Date:     time.Now().Format(DateLayout),
		Body:     body,
		ImgURL:   imgURL,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	s.emit(ctx, "post.published", post)
	return post, nil
}

func (s *PostService) Get(id uint) (*model.Post, error) {
	return s.posts.FindByID(id)
}

func (s *PostService) ListAll() ([]model.Post, error) {
	return s.posts.ListAll()
}

// Update overwrites title/subtitle/body/image URL; the creation date
// is never touched.
func (s *PostService) Update(id uint, title, subtitle, body, imgURL string) error {
	return s.posts.UpdateContent(id, title, subtitle, body, imgURL)
}

// Delete removes the post together with its comments. It reports
// whether a matching row existed.
func (s *PostService) Delete(ctx context.Context, id uint) (bool, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return false, nil
	}
	found, err := s.posts.Delete(id)
	if err != nil {
		return false, err
	}
	if found {
		s.emit(ctx, "post.deleted", post)
	}
	return found, nil
}

// emit publishes a lifecycle event in the mutation path. Producer
// failures are logged, never surfaced to the caller.
func (s *PostService) emit(ctx context.Context, event string, post *model.Post) {
	if s.events == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"event":     event,
		"post_id":   post.ID,
		"title":     post.Title,
		"author_id": post.AuthorID,
	})
	if err != nil {
		return
	}
	if err := s.events.Send(ctx, pkg.KeyFromID(post.ID), payload); err != nil {
		s.logger.Warn("post event not delivered",
			zap.String("event", event),
			zap.Uint("post_id", post.ID),
			zap.Error(err))
	}
}
