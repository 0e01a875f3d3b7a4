package implementation

import (
	"context"

	"docchat-be/internal/entity"
	"docchat-be/internal/mapper"
	"docchat-be/internal/model"
	"docchat-be/internal/repository/contract"
	"docchat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMessageMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMessageMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) UpdateContent(ctx context.Context, messageId int64, content string) error {
	return r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("id = ?", messageId).
		Update("content", content).Error
}

func (r *ChatMessageRepositoryImpl) DeleteByChatId(ctx context.Context, chatId string) error {
	return r.db.WithContext(ctx).Where("chat_id = ?", chatId).Delete(&model.ChatMessage{}).Error
}

func (r *ChatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	db := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	messages := make([]*entity.ChatMessage, len(models))
	for i, m := range models {
		messages[i] = r.mapper.ToEntity(m)
	}
	return messages, nil
}

func (r *ChatMessageRepositoryImpl) DistinctChatIds(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Distinct("chat_id").
		Order("chat_id").
		Pluck("chat_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
