package service

import (
	"context"
	"dataforge_backend/internal/catalog"
	"dataforge_backend/internal/config"
	"dataforge_backend/internal/model"
	"dataforge_backend/internal/util"
	"dataforge_backend/pkg/logger"
	"dataforge_backend/pkg/monitoring"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SnapshotStore 进度存档的持久化槽
type SnapshotStore interface {
	Load(ctx context.Context, userID uint) (*model.ProgressEnvelope, error)
	Save(ctx context.Context, userID uint, env *model.ProgressEnvelope) error
	Delete(ctx context.Context, userID uint) error
}

// ProgressObserver 在每次存档变更后收到一份快照副本
type ProgressObserver func(userID uint, snapshot *model.UserProgress)

// userState 单个用户的全部可变状态；st.mu 串行化该用户的所有读改写序列
type userState struct {
	mu       sync.Mutex
	progress *model.UserProgress
	theme    string
	session  *model.QuizSession
}

// ProgressService 进度存档的唯一写入方。内存中的存档是事实来源，
// 每次变更后异步性质地写回键值槽；写失败只降级为告警，不回滚内存状态。
type ProgressService struct {
	store SnapshotStore
	cfg   *config.Config

	mu    sync.Mutex
	users map[uint]*userState

	observers []ProgressObserver

	now func() time.Time // 测试中可替换
}

func NewProgressService(store SnapshotStore, cfg *config.Config) *ProgressService {
	return &ProgressService{
		store: store,
		cfg:   cfg,
		users: make(map[uint]*userState),
		now:   time.Now,
	}
}

// Subscribe 注册观察者；必须在开始处理请求之前完成注册
func (s *ProgressService) Subscribe(fn ProgressObserver) {
	s.observers = append(s.observers, fn)
}

// ApplyConfig 配置热加载回调
func (s *ProgressService) ApplyConfig(cfg *config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *ProgressService) streakBonus(streak int) int {
	s.mu.Lock()
	perDay := s.cfg.Progress.StreakBonusPerDay
	max := s.cfg.Progress.StreakBonusMax
	s.mu.Unlock()

	bonus := streak * perDay
	if bonus > max {
		bonus = max
	}
	return bonus
}

// state 取出（必要时懒加载）用户状态。返回时不持有任何锁。
func (s *ProgressService) state(ctx context.Context, userID uint) *userState {
	s.mu.Lock()
	st, ok := s.users[userID]
	if !ok {
		st = &userState{}
		s.users[userID] = st
	}
	s.mu.Unlock()

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.progress != nil {
		return st
	}

	env, err := s.store.Load(ctx, userID)
	if err != nil {
		logger.Log.Warn("progress snapshot load failed, starting fresh",
			zap.Uint("userId", userID), zap.Error(err))
	}
	if env != nil && env.Version == model.ProgressSchemaVersion && env.UserProgress != nil {
		st.progress = env.UserProgress
		st.progress.UserID = userID
		st.progress.Normalize()
		st.theme = env.Theme
	} else {
		if env != nil {
			logger.Log.Warn("progress snapshot has unknown schema version, starting fresh",
				zap.Uint("userId", userID), zap.Int("version", env.Version))
		}
		st.progress = model.NewUserProgress(userID)
		st.theme = util.DefaultTheme
	}
	if st.theme == "" {
		st.theme = util.DefaultTheme
	}
	return st
}

// persist 写回键值槽。调用方必须持有 st.mu。
// 写失败不是致命错误：内存状态仍然正确，受影响的只是持久性。
func (s *ProgressService) persist(ctx context.Context, st *userState) {
	env := &model.ProgressEnvelope{
		Version:      model.ProgressSchemaVersion,
		UserProgress: st.progress,
		Theme:        st.theme,
	}
	if err := s.store.Save(ctx, st.progress.UserID, env); err != nil {
		logger.Log.Warn("progress snapshot save failed, state kept in memory",
			zap.Uint("userId", st.progress.UserID), zap.Error(err))
	}
	monitoring.ProgressUpdates.Inc()
}

func (s *ProgressService) notify(userID uint, snapshot *model.UserProgress) {
	for _, fn := range s.observers {
		fn(userID, snapshot)
	}
}

// addXPLocked 统一的XP入账路径。调用方必须持有 st.mu。
func (s *ProgressService) addXPLocked(st *userState, amount int, topic string) {
	st.progress.TotalXP += amount
	if amount > 0 {
		monitoring.XPAwarded.Add(float64(amount))
	}
	if topic != "" {
		score, ok := st.progress.TopicScores[topic]
		if !ok {
			score = &model.TopicScore{}
			st.progress.TopicScores[topic] = score
		}
		score.LastPracticed = s.now()
	}
}

// Snapshot 当前进度快照（副本）
func (s *ProgressService) Snapshot(ctx context.Context, userID uint) *model.UserProgress {
	st := s.state(ctx, userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.progress.Clone()
}

// AddXP 给用户加 amount 点XP；topic 非空时同时刷新该主题的最近练习时间
// （不增加答题计数）。等级与级内XP由 TotalXP 实时推导，无需在此维护。
func (s *ProgressService) AddXP(ctx context.Context, userID uint, amount int, topic string) (*model.UserProgress, error) {
	if amount < 0 {
		return nil, util.ErrNegativeXP
	}
	if topic != "" {
		if _, ok := catalog.TopicByID(topic); !ok {
			return nil, util.ErrUnknownTopic
		}
	}

	st := s.state(ctx, userID)
	st.mu.Lock()
	s.addXPLocked(st, amount, topic)
	s.persist(ctx, st)
	snapshot := st.progress.Clone()
	st.mu.Unlock()

	s.notify(userID, snapshot)
	return snapshot, nil
}

// StreakResult UpdateStreak 的返回值
type StreakResult struct {
	Progress *model.UserProgress `json:"progress"`
	BonusXP  int                 `json:"bonusXp"`
}

// UpdateStreak 按自然日推进连续学习天数：
// 同一天重复活跃不变，隔一天 +1，隔多天重置为 1。
// now 早于 lastActive（时钟回拨）按同一天处理，不惩罚用户。
// 整个读改写序列在 st.mu 内完成。
func (s *ProgressService) UpdateStreak(ctx context.Context, userID uint) (*StreakResult, error) {
	st := s.state(ctx, userID)
	st.mu.Lock()

	now := s.now()
	p := st.progress

	bonus := 0
	if p.LastActive.IsZero() {
		p.Streak = 1
		bonus = s.streakBonus(p.Streak)
	} else {
		diffDays := calendarDaysBetween(p.LastActive, now)
		switch {
		case diffDays <= 0:
			// 同一天（或时钟回拨）：连续天数不变，也不重复发奖励
		case diffDays == 1:
			p.Streak++
			bonus = s.streakBonus(p.Streak)
		default:
			p.Streak = 1
			bonus = s.streakBonus(p.Streak)
		}
	}

	if p.Streak > p.LongestStreak {
		p.LongestStreak = p.Streak
	}
	if bonus > 0 {
		s.addXPLocked(st, bonus, "")
	}
	p.LastActive = now

	s.persist(ctx, st)
	snapshot := p.Clone()
	st.mu.Unlock()

	s.notify(userID, snapshot)
	return &StreakResult{Progress: snapshot, BonusXP: bonus}, nil
}

// calendarDaysBetween 截断到自然日后的天数差。
// 两个日期都按各自时区的年月日在 UTC 重建，保证每天恰好24小时，
// 夏令时切换不会把隔天误判成同一天。
func calendarDaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

// CompleteModule 幂等：重复完成不再发XP
func (s *ProgressService) CompleteModule(ctx context.Context, userID uint, moduleID string) (*model.UserProgress, error) {
	m, ok := catalog.ModuleByID(moduleID)
	if !ok {
		return nil, util.ErrUnknownModule
	}

	st := s.state(ctx, userID)
	st.mu.Lock()
	if st.progress.HasCompletedModule(moduleID) {
		snapshot := st.progress.Clone()
		st.mu.Unlock()
		return snapshot, nil
	}

	st.progress.CompletedModules = append(st.progress.CompletedModules, moduleID)
	s.addXPLocked(st, m.XPReward, m.Topic)
	s.persist(ctx, st)
	snapshot := st.progress.Clone()
	st.mu.Unlock()

	s.notify(userID, snapshot)
	return snapshot, nil
}

// UnlockAchievement 幂等地把成就写入集合。本操作不发放成就XP，
// 奖励由调用方（成就服务）显式入账。
func (s *ProgressService) UnlockAchievement(ctx context.Context, userID uint, achievementID string) (*model.UserProgress, bool, error) {
	if _, ok := catalog.AchievementByID(achievementID); !ok {
		return nil, false, util.ErrUnknownAchievement
	}

	st := s.state(ctx, userID)
	st.mu.Lock()
	if st.progress.HasAchievement(achievementID) {
		snapshot := st.progress.Clone()
		st.mu.Unlock()
		return snapshot, false, nil
	}

	st.progress.Achievements = append(st.progress.Achievements, achievementID)
	s.persist(ctx, st)
	snapshot := st.progress.Clone()
	st.mu.Unlock()

	s.notify(userID, snapshot)
	return snapshot, true, nil
}

// StartQuiz 从题库均匀无放回抽题，开启一个瞬态测验会话
func (s *ProgressService) StartQuiz(ctx context.Context, userID uint, topic string, difficulty model.Difficulty, count int) (*model.QuizSession, error) {
	if topic != "" {
		if _, ok := catalog.TopicByID(topic); !ok {
			return nil, util.ErrUnknownTopic
		}
	}

	questions := catalog.SampleQuestions(topic, difficulty, count)
	if len(questions) == 0 {
		return nil, util.ErrNoQuestions
	}

	st := s.state(ctx, userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.session != nil {
		return nil, util.ErrQuizAlreadyActive
	}

	st.session = &model.QuizSession{
		ID:         uuid.New().String(),
		UserID:     userID,
		Topic:      topic,
		Difficulty: difficulty,
		Questions:  questions,
		Answers:    []model.QuizAnswer{},
		StartedAt:  s.now(),
	}
	return st.session.Clone(), nil
}

// ActiveSession 当前测验会话（副本），无会话时返回 nil
func (s *ProgressService) ActiveSession(ctx context.Context, userID uint) *model.QuizSession {
	st := s.state(ctx, userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.session == nil {
		return nil
	}
	return st.session.Clone()
}

// GradeAnswer 对照题库判分。选择题要求完全一致，
// 自由作答忽略大小写与首尾空白。
func (s *ProgressService) GradeAnswer(questionID, answer string) (*model.Question, bool, error) {
	q, ok := catalog.QuestionByID(questionID)
	if !ok {
		return nil, false, util.ErrUnknownQuestion
	}

	if q.Type == model.FreeForm {
		return q, strings.EqualFold(strings.TrimSpace(answer), q.Answer), nil
	}
	return q, answer == q.Answer, nil
}

// RecordQuizResult 记录一次作答。没有进行中的会话时按规范静默返回当前快照。
// 答对走统一XP入账路径并累计主题正确数；答错只累计答题数。
func (s *ProgressService) RecordQuizResult(ctx context.Context, userID uint, questionID string, correct bool, timeSpentSec int) (*model.UserProgress, error) {
	q, ok := catalog.QuestionByID(questionID)
	if !ok {
		return nil, util.ErrUnknownQuestion
	}

	st := s.state(ctx, userID)
	st.mu.Lock()
	if st.session == nil {
		snapshot := st.progress.Clone()
		st.mu.Unlock()
		return snapshot, nil
	}

	score, found := st.progress.TopicScores[q.Topic]
	if !found {
		score = &model.TopicScore{}
		st.progress.TopicScores[q.Topic] = score
	}
	score.QuestionsAttempted++
	score.LastPracticed = s.now()

	if correct {
		score.QuestionsCorrect++
		s.addXPLocked(st, q.XPReward, "")
		monitoring.QuizAnswers.WithLabelValues("correct").Inc()
	} else {
		monitoring.QuizAnswers.WithLabelValues("incorrect").Inc()
	}

	st.session.Answers = append(st.session.Answers, model.QuizAnswer{
		QuestionID:   questionID,
		Correct:      correct,
		TimeSpentSec: timeSpentSec,
		AnsweredAt:   s.now(),
	})

	s.persist(ctx, st)
	snapshot := st.progress.Clone()
	st.mu.Unlock()

	s.notify(userID, snapshot)
	return snapshot, nil
}

// FinishQuiz 结束会话并汇总
func (s *ProgressService) FinishQuiz(ctx context.Context, userID uint) (*model.QuizSummary, error) {
	st := s.state(ctx, userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.session == nil {
		return nil, util.ErrNoActiveQuiz
	}

	sess := st.session
	st.session = nil

	summary := &model.QuizSummary{
		SessionID:   sess.ID,
		Topic:       sess.Topic,
		Total:       len(sess.Questions),
		Answered:    len(sess.Answers),
		CompletedAt: s.now(),
	}
	summary.Duration = summary.CompletedAt.Sub(sess.StartedAt)
	summary.DurationSec = int(summary.Duration.Seconds())

	for _, a := range sess.Answers {
		if !a.Correct {
			continue
		}
		summary.Correct++
		if a.TimeSpentSec > 0 && a.TimeSpentSec <= util.FastAnswerSec {
			summary.FastCorrect++
		}
		if q, ok := catalog.QuestionByID(a.QuestionID); ok {
			summary.XPEarned += q.XPReward
		}
	}

	return summary, nil
}

// ResetProgress 无条件回到零值存档：清内存、清会话、清键值槽
func (s *ProgressService) ResetProgress(ctx context.Context, userID uint) (*model.UserProgress, error) {
	st := s.state(ctx, userID)
	st.mu.Lock()
	st.progress = model.NewUserProgress(userID)
	st.theme = util.DefaultTheme
	st.session = nil

	if err := s.store.Delete(ctx, userID); err != nil {
		logger.Log.Warn("progress slot delete failed",
			zap.Uint("userId", userID), zap.Error(err))
	}
	monitoring.ProgressUpdates.Inc()
	snapshot := st.progress.Clone()
	st.mu.Unlock()

	s.notify(userID, snapshot)
	return snapshot, nil
}

// Export 一次性导出 {userProgress, exportedAt}
func (s *ProgressService) Export(ctx context.Context, userID uint) *model.ProgressExport {
	return &model.ProgressExport{
		UserProgress: s.Snapshot(ctx, userID),
		ExportedAt:   s.now(),
	}
}

// Theme 当前主题偏好
func (s *ProgressService) Theme(ctx context.Context, userID uint) string {
	st := s.state(ctx, userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.theme
}

// SetTheme 更新主题偏好并随存档一起落盘
func (s *ProgressService) SetTheme(ctx context.Context, userID uint, theme string) {
	st := s.state(ctx, userID)
	st.mu.Lock()
	st.theme = theme
	s.persist(ctx, st)
	st.mu.Unlock()
}
