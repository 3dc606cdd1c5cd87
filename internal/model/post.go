package model

import "time"

type Post struct {
	ID       uint   `gorm:"primaryKey"`
	AuthorID uint   `gorm:"not null;index"`
	Author   User   `gorm:"foreignKey:AuthorID"`
	Title    string `gorm:"uniqueIndex;size:250;not null"`
	Subtitle string `gorm:"size:250;not null"`
	// Date is the display string stamped at creation ("Jan 02, 2006").
	// It is never updated afterwards.
	Date      string    `gorm:"size:250;not null"`
	Body      string    `gorm:"type:text;not null"`
	ImgURL    string    `gorm:"size:250;not null"`
	Comments  []Comment `gorm:"foreignKey:PostID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }
