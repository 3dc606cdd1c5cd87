package service

import (
	"goblog/internal/model"
	"goblog/internal/repository/mysql"
)

type CommentService struct {
	comments *mysql.CommentRepository
}

func NewCommentService(comments *mysql.CommentRepository) *CommentService {
	return &CommentService{comments: comments}
}

func (s *CommentService) AddToPost(authorID, postID uint, text string) (*model.Comment, error) {
	comment := &model.Comment{
		AuthorID: authorID,
		PostID:   postID,
		Text:     text,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListForPost(postID uint) ([]model.Comment, error) {
	return s.comments.ListByPost(postID)
}
