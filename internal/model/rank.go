package model

type Rank string

const (
	RankJunior    Rank = "junior"
	RankMid       Rank = "mid"
	RankSenior    Rank = "senior"
	RankStaff     Rank = "staff"
	RankPrincipal Rank = "principal"
)

// RankThreshold 等级区间，MaxXP 为 -1 表示无上界
type RankThreshold struct {
	Rank  Rank   `json:"rank"`
	Title string `json:"title"`
	MinXP int    `json:"minXp"`
	MaxXP int    `json:"maxXp"`
}

// RankThresholds 等级表：区间连续、互不重叠，覆盖 [0, ∞)
var RankThresholds = []RankThreshold{
	{Rank: RankJunior, Title: "Junior Data Engineer", MinXP: 0, MaxXP: 999},
	{Rank: RankMid, Title: "Data Engineer", MinXP: 1000, MaxXP: 4999},
	{Rank: RankSenior, Title: "Senior Data Engineer", MinXP: 5000, MaxXP: 11999},
	{Rank: RankStaff, Title: "Staff Data Engineer", MinXP: 12000, MaxXP: 29999},
	{Rank: RankPrincipal, Title: "Principal Data Engineer", MinXP: 30000, MaxXP: -1},
}

// RankForXP 从高到低扫描等级表，返回第一个 totalXP >= MinXP 的等级。
// 区间连续且互不重叠，所以不存在并列。
func RankForXP(totalXP int) RankThreshold {
	for i := len(RankThresholds) - 1; i >= 0; i-- {
		if totalXP >= RankThresholds[i].MinXP {
			return RankThresholds[i]
		}
	}
	return RankThresholds[0]
}
