package service

import (
	"context"
	"dataforge_backend/internal/catalog"
	"dataforge_backend/internal/model"
	"dataforge_backend/internal/util"
)

// CatalogService 只读内容目录的访问层；锁定状态按当前进度实时推导
type CatalogService struct {
	Progress *ProgressService
}

func NewCatalogService(progress *ProgressService) *CatalogService {
	return &CatalogService{Progress: progress}
}

// ModuleView 模块目录条目加用户视角的状态
type ModuleView struct {
	model.LearningModule
	Locked    bool `json:"locked"`
	Completed bool `json:"completed"`
}

func (s *CatalogService) ListTopics() []model.Topic {
	return append([]model.Topic{}, catalog.Topics...)
}

// ListModules 全部模块及锁定/完成状态
func (s *CatalogService) ListModules(ctx context.Context, userID uint) []ModuleView {
	snapshot := s.Progress.Snapshot(ctx, userID)

	views := make([]ModuleView, len(catalog.Modules))
	for i := range catalog.Modules {
		m := &catalog.Modules[i]
		views[i] = ModuleView{
			LearningModule: *m,
			Locked:         catalog.IsModuleLocked(snapshot, m),
			Completed:      snapshot.HasCompletedModule(m.ID),
		}
	}
	return views
}

func (s *CatalogService) GetModule(ctx context.Context, userID uint, moduleID string) (*ModuleView, error) {
	m, ok := catalog.ModuleByID(moduleID)
	if !ok {
		return nil, util.ErrUnknownModule
	}

	snapshot := s.Progress.Snapshot(ctx, userID)
	return &ModuleView{
		LearningModule: *m,
		Locked:         catalog.IsModuleLocked(snapshot, m),
		Completed:      snapshot.HasCompletedModule(m.ID),
	}, nil
}

// ListQuestions 按主题/难度浏览题库（含答案与解析，供复习模式使用）
func (s *CatalogService) ListQuestions(topic string, difficulty model.Difficulty) ([]model.Question, error) {
	if topic != "" {
		if _, ok := catalog.TopicByID(topic); !ok {
			return nil, util.ErrUnknownTopic
		}
	}
	return catalog.FilterQuestions(topic, difficulty), nil
}

func (s *CatalogService) ListFlashcards(topic string) ([]model.Flashcard, error) {
	if topic != "" {
		if _, ok := catalog.TopicByID(topic); !ok {
			return nil, util.ErrUnknownTopic
		}
	}
	return catalog.FlashcardsByTopic(topic), nil
}
