package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankForXP(t *testing.T) {
	cases := []struct {
		totalXP   int
		rank      Rank
		xpInLevel int
	}{
		{0, RankJunior, 0},
		{999, RankJunior, 999},
		{1000, RankMid, 0},
		{4999, RankMid, 3999},
		{5000, RankSenior, 0},
		{12000, RankStaff, 0},
		{29999, RankStaff, 17999},
		{30000, RankPrincipal, 0},
		{123456, RankPrincipal, 93456},
	}
	for _, tc := range cases {
		p := &UserProgress{TotalXP: tc.totalXP}
		assert.Equal(t, tc.rank, p.Rank().Rank, "totalXP=%d", tc.totalXP)
		assert.Equal(t, tc.xpInLevel, p.XPInLevel(), "totalXP=%d", tc.totalXP)
	}
}

func TestTotalQuestionsCorrect(t *testing.T) {
	p := NewUserProgress(1)
	assert.Equal(t, 0, p.TotalQuestionsCorrect())

	p.TopicScores["sql"] = &TopicScore{QuestionsAttempted: 5, QuestionsCorrect: 3}
	p.TopicScores["etl"] = &TopicScore{QuestionsAttempted: 2, QuestionsCorrect: 2}
	assert.Equal(t, 5, p.TotalQuestionsCorrect())
}

func TestCloneIsDeep(t *testing.T) {
	p := NewUserProgress(1)
	p.TotalXP = 100
	p.CompletedModules = append(p.CompletedModules, "sql-foundations")
	p.TopicScores["sql"] = &TopicScore{QuestionsCorrect: 1}

	cp := p.Clone()
	cp.TotalXP = 999
	cp.CompletedModules[0] = "mutated"
	cp.TopicScores["sql"].QuestionsCorrect = 42

	assert.Equal(t, 100, p.TotalXP)
	assert.Equal(t, "sql-foundations", p.CompletedModules[0])
	assert.Equal(t, 1, p.TopicScores["sql"].QuestionsCorrect)
}

// 零值存档序列化后集合字段必须是 [] 和 {}，不能是 null
func TestNewUserProgressMarshalsEmptyCollections(t *testing.T) {
	data, err := json.Marshal(NewUserProgress(1))
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"completedModules":[]`)
	assert.Contains(t, s, `"achievements":[]`)
	assert.Contains(t, s, `"topicScores":{}`)
}

func TestProgressEnvelopeRoundTrip(t *testing.T) {
	p := NewUserProgress(7)
	p.TotalXP = 1234
	p.Streak = 3
	env := &ProgressEnvelope{
		Version:      ProgressSchemaVersion,
		UserProgress: p,
		Theme:        "light",
	}

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var got ProgressEnvelope
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, ProgressSchemaVersion, got.Version)
	assert.Equal(t, "light", got.Theme)
	require.NotNil(t, got.UserProgress)
	assert.Equal(t, 1234, got.UserProgress.TotalXP)
	assert.Equal(t, uint(7), got.UserProgress.UserID)
}
