package dto

import "time"

type NewChatResponse struct {
	ChatId  string               `json:"chat_id"`
	Welcome *ChatMessageResponse `json:"welcome"`
}

type ChatMessageResponse struct {
	Id        int64     `json:"id"`
	ChatId    string    `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SubmitQueryRequest struct {
	ChatId string `json:"chat_id" validate:"required"`
	Query  string `json:"query" validate:"required"`
	Model  string `json:"model"`
}

type ChatListResponse struct {
	ChatIds []string `json:"chat_ids"`
}
