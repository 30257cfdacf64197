package model

import "time"

type Blog struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:60;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Author    string     `gorm:"size:128;not null" json:"author"`
	CreatedAt time.Time  `gorm:"<-:create;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}
