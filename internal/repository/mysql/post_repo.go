package mysql

import (
	"goblog/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").First(&post, id).Error
	return &post, err
}

func (r *PostRepository) ListAll() ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Preload("Author").Order("id").Find(&list).Error
	return list, err
}

// UpdateContent overwrites the mutable fields only; the creation date
// column is deliberately left out of the update.
func (r *PostRepository) UpdateContent(id uint, title, subtitle, body, imgURL string) error {
	return r.DB.Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":    title,
			"subtitle": subtitle,
			"body":     body,
			"img_url":  imgURL,
		}).Error
}

// Delete removes the post and its comments in one transaction. It
// reports whether a matching post row existed.
func (r *PostRepository) Delete(id uint) (bool, error) {
	found := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true
		return tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error
	})
	return found, err
}
