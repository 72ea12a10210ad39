package catalog

import "dataforge_backend/internal/model"

// Achievements 成就目录。Requirement 的语义随类别而定：
// mastery=完成模块数，streak=最长连续天数，challenge=累计答对题数，
// speed=单次测验内快速答对题数。
var Achievements = []model.Achievement{
	{ID: "first-steps", Category: model.AchievementMastery, Name: "初入管道", Description: "完成第一个课程模块", Icon: "🔨", Requirement: 1, XPReward: 50},
	{ID: "module-master", Category: model.AchievementMastery, Name: "模块大师", Description: "完成5个课程模块", Icon: "🏗️", Requirement: 5, XPReward: 200},
	{ID: "curriculum-complete", Category: model.AchievementMastery, Name: "全栈数据工程师", Description: "完成全部8个课程模块", Icon: "🎓", Requirement: 8, XPReward: 500},
	{ID: "warming-up", Category: model.AchievementStreak, Name: "渐入佳境", Description: "连续学习3天", Icon: "🔥", Requirement: 3, XPReward: 50},
	{ID: "on-fire", Category: model.AchievementStreak, Name: "火力全开", Description: "连续学习7天", Icon: "🚀", Requirement: 7, XPReward: 150},
	{ID: "unstoppable", Category: model.AchievementStreak, Name: "势不可挡", Description: "连续学习30天", Icon: "💎", Requirement: 30, XPReward: 500},
	{ID: "quick-thinker", Category: model.AchievementSpeed, Name: "快枪手", Description: "单次测验中10秒内答对3题", Icon: "⚡", Requirement: 3, XPReward: 100},
	{ID: "centurion", Category: model.AchievementChallenge, Name: "百题斩", Description: "累计答对100道题", Icon: "⚔️", Requirement: 100, XPReward: 300},
	{ID: "sharp-shooter", Category: model.AchievementChallenge, Name: "神射手", Description: "累计答对25道题", Icon: "🎯", Requirement: 25, XPReward: 100},
}
