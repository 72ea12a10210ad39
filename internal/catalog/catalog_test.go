package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataforge_backend/internal/model"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate())
}

func TestLookupByID(t *testing.T) {
	topic, ok := TopicByID("sql")
	require.True(t, ok)
	assert.Equal(t, "sql", topic.ID)

	_, ok = TopicByID("basket-weaving")
	assert.False(t, ok)

	m, ok := ModuleByID("warehouse-internals")
	require.True(t, ok)
	assert.Equal(t, "warehousing", m.Topic)

	q, ok := QuestionByID("q-sql-001")
	require.True(t, ok)
	assert.Equal(t, model.MultipleChoice, q.Type)

	a, ok := AchievementByID("first-steps")
	require.True(t, ok)
	assert.Equal(t, model.AchievementMastery, a.Category)
}

func TestFilterQuestions(t *testing.T) {
	all := FilterQuestions("", "")
	assert.Len(t, all, len(Questions))

	sql := FilterQuestions("sql", "")
	require.NotEmpty(t, sql)
	for _, q := range sql {
		assert.Equal(t, "sql", q.Topic)
	}

	beginners := FilterQuestions("sql", model.DifficultyBeginner)
	for _, q := range beginners {
		assert.Equal(t, model.DifficultyBeginner, q.Difficulty)
	}
	assert.Less(t, len(beginners), len(sql))

	assert.Empty(t, FilterQuestions("warehousing", model.DifficultyAdvanced))
}

func TestSampleQuestions(t *testing.T) {
	picked := SampleQuestions("sql", "", 3)
	require.Len(t, picked, 3)

	// 无放回：不允许重复
	seen := make(map[string]bool)
	for _, q := range picked {
		assert.False(t, seen[q.ID], "question %s sampled twice", q.ID)
		seen[q.ID] = true
		assert.Equal(t, "sql", q.Topic)
	}

	// 题池不足时返回整个题池
	pool := FilterQuestions("sql", "")
	all := SampleQuestions("sql", "", len(pool)+10)
	assert.Len(t, all, len(pool))

	assert.Empty(t, SampleQuestions("warehousing", model.DifficultyAdvanced, 5))
}

func TestFlashcardsByTopic(t *testing.T) {
	all := FlashcardsByTopic("")
	assert.Len(t, all, len(Flashcards))

	sql := FlashcardsByTopic("sql")
	require.NotEmpty(t, sql)
	for _, f := range sql {
		assert.Equal(t, "sql", f.Topic)
	}
}

func TestIsModuleLocked(t *testing.T) {
	p := model.NewUserProgress(1)
	joins, ok := ModuleByID("sql-joins")
	require.True(t, ok)
	internals, ok := ModuleByID("warehouse-internals")
	require.True(t, ok)
	foundations, ok := ModuleByID("sql-foundations")
	require.True(t, ok)

	// 无前置的模块永远解锁
	assert.False(t, IsModuleLocked(p, foundations))
	assert.True(t, IsModuleLocked(p, joins))

	p.CompletedModules = append(p.CompletedModules, "sql-foundations")
	assert.False(t, IsModuleLocked(p, joins))

	// 多前置要求全部完成
	p.CompletedModules = append(p.CompletedModules, "dimensional-modeling")
	assert.True(t, IsModuleLocked(p, internals))
	p.CompletedModules = append(p.CompletedModules, "etl-pipelines")
	assert.False(t, IsModuleLocked(p, internals))
}
