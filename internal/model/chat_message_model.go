package model

import (
	"time"
)

type ChatMessage struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	ChatId    string    `gorm:"type:varchar(64);not null;index"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
