package service

import (
	"context"
	"dataforge_backend/internal/catalog"
	"dataforge_backend/internal/model"
	"dataforge_backend/pkg/logger"

	"go.uber.org/zap"
)

// AchievementService 成就的解锁判定与奖励入账。
// 进度存档的 UnlockAchievement 只写集合，XP奖励在这里显式发放。
type AchievementService struct {
	Progress *ProgressService
}

func NewAchievementService(progress *ProgressService) *AchievementService {
	return &AchievementService{Progress: progress}
}

// AchievementView 成就目录条目加解锁状态
type AchievementView struct {
	model.Achievement
	Unlocked bool `json:"unlocked"`
}

// Overview 全部成就及当前用户的解锁状态
func (s *AchievementService) Overview(ctx context.Context, userID uint) []AchievementView {
	snapshot := s.Progress.Snapshot(ctx, userID)

	views := make([]AchievementView, len(catalog.Achievements))
	for i, a := range catalog.Achievements {
		views[i] = AchievementView{
			Achievement: a,
			Unlocked:    snapshot.HasAchievement(a.ID),
		}
	}
	return views
}

// Unlock 解锁单个成就；首次解锁时在这里发放成就XP
func (s *AchievementService) Unlock(ctx context.Context, userID uint, achievementID string) (*model.UserProgress, bool, error) {
	snapshot, newly, err := s.Progress.UnlockAchievement(ctx, userID, achievementID)
	if err != nil {
		return nil, false, err
	}
	if !newly {
		return snapshot, false, nil
	}

	a, _ := catalog.AchievementByID(achievementID)
	if a.XPReward > 0 {
		snapshot, err = s.Progress.AddXP(ctx, userID, a.XPReward, "")
		if err != nil {
			return nil, true, err
		}
	}

	logger.Log.Info("achievement unlocked",
		zap.Uint("userId", userID),
		zap.String("achievement", achievementID))

	return snapshot, true, nil
}

// EvaluateProgress 根据当前存档判定 mastery/streak/challenge 三类成就，
// 返回本次新解锁的成就ID。在模块完成、连续打卡等变更之后调用。
func (s *AchievementService) EvaluateProgress(ctx context.Context, userID uint) ([]string, error) {
	snapshot := s.Progress.Snapshot(ctx, userID)

	var unlocked []string
	for _, a := range catalog.Achievements {
		if snapshot.HasAchievement(a.ID) {
			continue
		}

		met := false
		switch a.Category {
		case model.AchievementMastery:
			met = len(snapshot.CompletedModules) >= a.Requirement
		case model.AchievementStreak:
			met = snapshot.LongestStreak >= a.Requirement
		case model.AchievementChallenge:
			met = snapshot.TotalQuestionsCorrect() >= a.Requirement
		}
		if !met {
			continue
		}

		if _, newly, err := s.Unlock(ctx, userID, a.ID); err != nil {
			return unlocked, err
		} else if newly {
			unlocked = append(unlocked, a.ID)
		}
	}
	return unlocked, nil
}

// EvaluateQuiz 测验结束后判定 speed 类成就（门槛=单次测验内快速答对题数）
func (s *AchievementService) EvaluateQuiz(ctx context.Context, userID uint, summary *model.QuizSummary) ([]string, error) {
	snapshot := s.Progress.Snapshot(ctx, userID)

	var unlocked []string
	for _, a := range catalog.Achievements {
		if a.Category != model.AchievementSpeed || snapshot.HasAchievement(a.ID) {
			continue
		}
		if summary.FastCorrect < a.Requirement {
			continue
		}

		if _, newly, err := s.Unlock(ctx, userID, a.ID); err != nil {
			return unlocked, err
		} else if newly {
			unlocked = append(unlocked, a.ID)
		}
	}
	return unlocked, nil
}
