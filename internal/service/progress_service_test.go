package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataforge_backend/internal/config"
	"dataforge_backend/internal/model"
	"dataforge_backend/internal/util"
)

// fakeStore 内存键值槽，可注入失败
type fakeStore struct {
	envs      map[uint]*model.ProgressEnvelope
	loadErr   error
	saveErr   error
	deleteErr error
	saves     int
	deletes   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{envs: make(map[uint]*model.ProgressEnvelope)}
}

func (f *fakeStore) Load(ctx context.Context, userID uint) (*model.ProgressEnvelope, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.envs[userID], nil
}

func (f *fakeStore) Save(ctx context.Context, userID uint, env *model.ProgressEnvelope) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.envs[userID] = env
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, userID uint) error {
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.envs, userID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Progress: config.ProgressConfig{
			StreakBonusPerDay: 5,
			StreakBonusMax:    50,
		},
	}
}

// newTestService 固定时钟起点 2026-03-01 12:00 UTC，返回可拨动时钟的回调
func newTestService(store SnapshotStore) (*ProgressService, func(time.Time)) {
	svc := NewProgressService(store, testConfig())
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }
	return svc, func(t time.Time) { current = t }
}

func TestAddXP(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	p, err := svc.AddXP(ctx, 1, 100, "")
	require.NoError(t, err)
	assert.Equal(t, 100, p.TotalXP)

	p, err = svc.AddXP(ctx, 1, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 100, p.TotalXP)

	p, err = svc.AddXP(ctx, 1, 50, "sql")
	require.NoError(t, err)
	assert.Equal(t, 150, p.TotalXP)
	require.Contains(t, p.TopicScores, "sql")
	assert.False(t, p.TopicScores["sql"].LastPracticed.IsZero())
	assert.Equal(t, 0, p.TopicScores["sql"].QuestionsAttempted)
}

func TestAddXPRejectsNegativeAmount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	_, err := svc.AddXP(ctx, 1, -10, "")
	assert.ErrorIs(t, err, util.ErrNegativeXP)

	p := svc.Snapshot(ctx, 1)
	assert.Equal(t, 0, p.TotalXP)
}

func TestAddXPRejectsUnknownTopic(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	_, err := svc.AddXP(ctx, 1, 10, "basket-weaving")
	assert.ErrorIs(t, err, util.ErrUnknownTopic)
}

func TestRankDerivedFromTotalXP(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	p, err := svc.AddXP(ctx, 1, 999, "")
	require.NoError(t, err)
	assert.Equal(t, model.RankJunior, p.Rank().Rank)
	assert.Equal(t, 999, p.XPInLevel())

	p, err = svc.AddXP(ctx, 1, 1, "")
	require.NoError(t, err)
	assert.Equal(t, model.RankMid, p.Rank().Rank)
	assert.Equal(t, 0, p.XPInLevel())
}

func TestUpdateStreakFirstActivity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	res, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Progress.Streak)
	assert.Equal(t, 1, res.Progress.LongestStreak)
	assert.Equal(t, 5, res.BonusXP)
	assert.Equal(t, 5, res.Progress.TotalXP)
}

func TestUpdateStreakSameDayIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, setNow := newTestService(newFakeStore())

	_, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)

	// 同一天晚些时候再打卡
	setNow(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC))
	res, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Progress.Streak)
	assert.Equal(t, 0, res.BonusXP)
	assert.Equal(t, 5, res.Progress.TotalXP)
}

func TestUpdateStreakConsecutiveDay(t *testing.T) {
	ctx := context.Background()
	svc, setNow := newTestService(newFakeStore())

	_, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)

	// 次日凌晨也算隔一天
	setNow(time.Date(2026, 3, 2, 0, 5, 0, 0, time.UTC))
	res, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Progress.Streak)
	assert.Equal(t, 2, res.Progress.LongestStreak)
	assert.Equal(t, 10, res.BonusXP)
}

func TestUpdateStreakGapResets(t *testing.T) {
	ctx := context.Background()
	svc, setNow := newTestService(newFakeStore())

	_, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)
	setNow(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	_, err = svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)

	setNow(time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC))
	res, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Progress.Streak)
	assert.Equal(t, 2, res.Progress.LongestStreak, "最长纪录不随重置回退")
}

func TestUpdateStreakClockSkew(t *testing.T) {
	ctx := context.Background()
	svc, setNow := newTestService(newFakeStore())

	_, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)

	// 时钟回拨到前一天：按同一天处理，不清零
	setNow(time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC))
	res, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Progress.Streak)
	assert.Equal(t, 0, res.BonusXP)
}

// 夏令时切换让某些自然日只有23小时；隔天打卡仍然要算隔一天
func TestUpdateStreakAcrossDSTTransition(t *testing.T) {
	ctx := context.Background()
	svc, setNow := newTestService(newFakeStore())

	est := time.FixedZone("EST", -5*3600)
	edt := time.FixedZone("EDT", -4*3600)

	setNow(time.Date(2026, 3, 8, 22, 0, 0, 0, est))
	_, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)

	// 次日同一墙上时间，但因为拨快了时钟，实际只过了23小时
	setNow(time.Date(2026, 3, 9, 21, 30, 0, 0, edt))
	res, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Progress.Streak)
	assert.Equal(t, 10, res.BonusXP)
}

func TestUpdateStreakBonusCapped(t *testing.T) {
	ctx := context.Background()
	svc, setNow := newTestService(newFakeStore())

	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var res *StreakResult
	var err error
	for i := 0; i < 12; i++ {
		setNow(day.AddDate(0, 0, i))
		res, err = svc.UpdateStreak(ctx, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 12, res.Progress.Streak)
	assert.Equal(t, 50, res.BonusXP, "奖励达到上限后不再随天数增长")
}

func TestApplyConfigChangesStreakBonus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	svc.ApplyConfig(&config.Config{
		Progress: config.ProgressConfig{StreakBonusPerDay: 20, StreakBonusMax: 100},
	})

	res, err := svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 20, res.BonusXP)
}

func TestCompleteModule(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	p, err := svc.CompleteModule(ctx, 1, "sql-foundations")
	require.NoError(t, err)
	assert.Equal(t, []string{"sql-foundations"}, p.CompletedModules)
	assert.Equal(t, 100, p.TotalXP)
	require.Contains(t, p.TopicScores, "sql")
}

func TestCompleteModuleIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	_, err := svc.CompleteModule(ctx, 1, "sql-foundations")
	require.NoError(t, err)
	p, err := svc.CompleteModule(ctx, 1, "sql-foundations")
	require.NoError(t, err)

	assert.Equal(t, []string{"sql-foundations"}, p.CompletedModules)
	assert.Equal(t, 100, p.TotalXP, "重复完成不再发XP")
}

func TestCompleteModuleUnknown(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	_, err := svc.CompleteModule(ctx, 1, "quantum-basket-weaving")
	assert.ErrorIs(t, err, util.ErrUnknownModule)
}

func TestUnlockAchievement(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	p, newly, err := svc.UnlockAchievement(ctx, 1, "first-steps")
	require.NoError(t, err)
	assert.True(t, newly)
	assert.Equal(t, []string{"first-steps"}, p.Achievements)
	assert.Equal(t, 0, p.TotalXP, "奖励由成就服务入账，这里只写集合")

	p, newly, err = svc.UnlockAchievement(ctx, 1, "first-steps")
	require.NoError(t, err)
	assert.False(t, newly)
	assert.Equal(t, []string{"first-steps"}, p.Achievements)
}

func TestUnlockAchievementUnknown(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	_, _, err := svc.UnlockAchievement(ctx, 1, "no-such-badge")
	assert.ErrorIs(t, err, util.ErrUnknownAchievement)
}

func TestQuizLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, setNow := newTestService(newFakeStore())

	sess, err := svc.StartQuiz(ctx, 1, "sql", "", 3)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Len(t, sess.Questions, 3)
	for _, q := range sess.Questions {
		assert.Equal(t, "sql", q.Topic)
	}

	// 已有进行中的会话时拒绝再开
	_, err = svc.StartQuiz(ctx, 1, "sql", "", 3)
	assert.ErrorIs(t, err, util.ErrQuizAlreadyActive)

	active := svc.ActiveSession(ctx, 1)
	require.NotNil(t, active)
	assert.Equal(t, sess.ID, active.ID)

	// 答对 q-sql-001（10 XP，8秒，算快速），答错 q-sql-003
	_, err = svc.RecordQuizResult(ctx, 1, "q-sql-001", true, 8)
	require.NoError(t, err)
	p, err := svc.RecordQuizResult(ctx, 1, "q-sql-003", false, 40)
	require.NoError(t, err)
	assert.Equal(t, 10, p.TotalXP)
	assert.Equal(t, 2, p.TopicScores["sql"].QuestionsAttempted)
	assert.Equal(t, 1, p.TopicScores["sql"].QuestionsCorrect)

	setNow(time.Date(2026, 3, 1, 12, 2, 0, 0, time.UTC))
	summary, err := svc.FinishQuiz(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, summary.SessionID)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Answered)
	assert.Equal(t, 1, summary.Correct)
	assert.Equal(t, 1, summary.FastCorrect)
	assert.Equal(t, 10, summary.XPEarned)
	assert.Equal(t, 120, summary.DurationSec)

	assert.Nil(t, svc.ActiveSession(ctx, 1))
	_, err = svc.FinishQuiz(ctx, 1)
	assert.ErrorIs(t, err, util.ErrNoActiveQuiz)
}

func TestStartQuizUnknownTopic(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	_, err := svc.StartQuiz(ctx, 1, "basket-weaving", "", 3)
	assert.ErrorIs(t, err, util.ErrUnknownTopic)
}

func TestStartQuizEmptyPool(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	// warehousing 主题没有 advanced 难度的题
	_, err := svc.StartQuiz(ctx, 1, "warehousing", model.DifficultyAdvanced, 3)
	assert.ErrorIs(t, err, util.ErrNoQuestions)
}

func TestRecordQuizResultWithoutSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	p, err := svc.RecordQuizResult(ctx, 1, "q-sql-001", true, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalXP, "无会话时静默返回当前快照")
	assert.NotContains(t, p.TopicScores, "sql")
}

func TestRecordQuizResultUnknownQuestion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	_, err := svc.RecordQuizResult(ctx, 1, "q-nope-999", true, 5)
	assert.ErrorIs(t, err, util.ErrUnknownQuestion)
}

func TestGradeAnswer(t *testing.T) {
	svc, _ := newTestService(newFakeStore())

	// 选择题：完全一致
	q, correct, err := svc.GradeAnswer("q-sql-001", "HAVING")
	require.NoError(t, err)
	assert.Equal(t, "q-sql-001", q.ID)
	assert.True(t, correct)

	_, correct, err = svc.GradeAnswer("q-sql-001", "having")
	require.NoError(t, err)
	assert.False(t, correct)

	// 自由作答：忽略大小写与首尾空白
	_, correct, err = svc.GradeAnswer("q-sql-005", "  row_number  ")
	require.NoError(t, err)
	assert.True(t, correct)

	_, _, err = svc.GradeAnswer("q-nope-999", "x")
	assert.ErrorIs(t, err, util.ErrUnknownQuestion)
}

func TestResetProgress(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc, _ := newTestService(store)

	_, err := svc.CompleteModule(ctx, 1, "sql-foundations")
	require.NoError(t, err)
	_, err = svc.UpdateStreak(ctx, 1)
	require.NoError(t, err)
	_, err = svc.StartQuiz(ctx, 1, "", "", 2)
	require.NoError(t, err)
	svc.SetTheme(ctx, 1, "light")

	p, err := svc.ResetProgress(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalXP)
	assert.Equal(t, 0, p.Streak)
	assert.Equal(t, 0, p.LongestStreak)
	assert.Empty(t, p.CompletedModules)
	assert.Empty(t, p.Achievements)
	assert.Empty(t, p.TopicScores)
	assert.True(t, p.LastActive.IsZero())

	assert.Nil(t, svc.ActiveSession(ctx, 1))
	assert.Equal(t, util.DefaultTheme, svc.Theme(ctx, 1))
	assert.Equal(t, 1, store.deletes)
	assert.NotContains(t, store.envs, uint(1))
}

func TestPersistedEnvelope(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc, _ := newTestService(store)

	_, err := svc.AddXP(ctx, 7, 42, "")
	require.NoError(t, err)

	env := store.envs[7]
	require.NotNil(t, env)
	assert.Equal(t, model.ProgressSchemaVersion, env.Version)
	assert.Equal(t, util.DefaultTheme, env.Theme)
	assert.Equal(t, 42, env.UserProgress.TotalXP)
}

func TestHydrateFromStore(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	saved := model.NewUserProgress(3)
	saved.TotalXP = 1200
	saved.Streak = 4
	store.envs[3] = &model.ProgressEnvelope{
		Version:      model.ProgressSchemaVersion,
		UserProgress: saved,
		Theme:        "light",
	}

	svc, _ := newTestService(store)
	p := svc.Snapshot(ctx, 3)
	assert.Equal(t, 1200, p.TotalXP)
	assert.Equal(t, 4, p.Streak)
	assert.Equal(t, model.RankMid, p.Rank().Rank)
	assert.Equal(t, "light", svc.Theme(ctx, 3))
}

// 带外修补过的存档可能把集合字段写成 null；加载后必须补齐，
// 否则下一次带主题的XP入账会向 nil map 写入
func TestHydrateNullCollections(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	var env model.ProgressEnvelope
	payload := `{"version":1,"userProgress":{"userId":1,"totalXp":500,"streak":2,` +
		`"completedModules":null,"achievements":null,"topicScores":null},"theme":"dark"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &env))
	store.envs[1] = &env

	svc, _ := newTestService(store)
	p, err := svc.AddXP(ctx, 1, 10, "sql")
	require.NoError(t, err)
	assert.Equal(t, 510, p.TotalXP)
	require.Contains(t, p.TopicScores, "sql")
	assert.NotNil(t, p.CompletedModules)
	assert.NotNil(t, p.Achievements)
}

func TestHydrateUnknownSchemaVersionStartsFresh(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	saved := model.NewUserProgress(3)
	saved.TotalXP = 1200
	store.envs[3] = &model.ProgressEnvelope{Version: 99, UserProgress: saved}

	svc, _ := newTestService(store)
	p := svc.Snapshot(ctx, 3)
	assert.Equal(t, 0, p.TotalXP)
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.saveErr = assert.AnError
	svc, _ := newTestService(store)

	p, err := svc.AddXP(ctx, 1, 30, "")
	require.NoError(t, err, "写回失败只降级为告警")
	assert.Equal(t, 30, p.TotalXP)

	p = svc.Snapshot(ctx, 1)
	assert.Equal(t, 30, p.TotalXP)
}

func TestObserverReceivesSnapshotCopy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	var gotUser uint
	var gotSnapshot *model.UserProgress
	svc.Subscribe(func(userID uint, snapshot *model.UserProgress) {
		gotUser = userID
		gotSnapshot = snapshot
	})

	_, err := svc.AddXP(ctx, 9, 10, "")
	require.NoError(t, err)
	require.NotNil(t, gotSnapshot)
	assert.Equal(t, uint(9), gotUser)
	assert.Equal(t, 10, gotSnapshot.TotalXP)

	// 观察者改动自己的副本不影响服务内状态
	gotSnapshot.TotalXP = 9999
	assert.Equal(t, 10, svc.Snapshot(ctx, 9).TotalXP)
}

func TestThemeSurvivesRehydration(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc, _ := newTestService(store)

	_, err := svc.AddXP(ctx, 1, 10, "")
	require.NoError(t, err)
	svc.SetTheme(ctx, 1, "system")

	svc2, _ := newTestService(store)
	assert.Equal(t, "system", svc2.Theme(ctx, 1))
	assert.Equal(t, 10, svc2.Snapshot(ctx, 1).TotalXP)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeStore())

	_, err := svc.AddXP(ctx, 1, 77, "")
	require.NoError(t, err)

	export := svc.Export(ctx, 1)
	require.NotNil(t, export)
	assert.Equal(t, 77, export.UserProgress.TotalXP)
	assert.False(t, export.ExportedAt.IsZero())
}
