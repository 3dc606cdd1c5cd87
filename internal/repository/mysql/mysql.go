package mysql

import (
	"goblog/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open connects to MySQL and enables dialect error translation so that
// unique-index violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// AutoMigrate creates the user/posts/comments tables if they are absent.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
	)
}
