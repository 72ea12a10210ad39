package catalog

import "dataforge_backend/internal/model"

// Modules 课程模块目录；前置关系构成无环依赖链
var Modules = []model.LearningModule{
	{
		ID:          "sql-foundations",
		Topic:       "sql",
		Difficulty:  model.DifficultyBeginner,
		Title:       "SQL 基础",
		Description: "SELECT、WHERE、GROUP BY 与聚合函数。",
		Sections: []model.ModuleSection{
			{ID: "sql-foundations-1", Title: "SELECT 与投影", Content: "从单表取数，列裁剪与别名。"},
			{ID: "sql-foundations-2", Title: "过滤与排序", Content: "WHERE、ORDER BY、LIMIT。"},
			{ID: "sql-foundations-3", Title: "聚合", Content: "GROUP BY、HAVING 与常用聚合函数。"},
		},
		XPReward:         100,
		EstimatedMinutes: 40,
	},
	{
		ID:          "sql-joins",
		Topic:       "sql",
		Difficulty:  model.DifficultyIntermediate,
		Title:       "连接与子查询",
		Description: "内连接、外连接、半连接与相关子查询。",
		Sections: []model.ModuleSection{
			{ID: "sql-joins-1", Title: "JOIN 类型", Content: "INNER/LEFT/RIGHT/FULL 的语义差异。"},
			{ID: "sql-joins-2", Title: "子查询", Content: "EXISTS、IN 与相关子查询的改写。"},
		},
		Prerequisites:    []string{"sql-foundations"},
		XPReward:         150,
		EstimatedMinutes: 50,
	},
	{
		ID:          "sql-window-functions",
		Topic:       "sql",
		Difficulty:  model.DifficultyAdvanced,
		Title:       "窗口函数",
		Description: "ROW_NUMBER、RANK、滑动窗口与帧子句。",
		Sections: []model.ModuleSection{
			{ID: "sql-window-1", Title: "排名函数", Content: "ROW_NUMBER/RANK/DENSE_RANK 的区别。"},
			{ID: "sql-window-2", Title: "帧子句", Content: "ROWS BETWEEN 与累计聚合。"},
		},
		Prerequisites:    []string{"sql-joins"},
		XPReward:         200,
		EstimatedMinutes: 60,
	},
	{
		ID:          "dimensional-modeling",
		Topic:       "data-modeling",
		Difficulty:  model.DifficultyIntermediate,
		Title:       "维度建模",
		Description: "事实表、维度表与星型模式设计。",
		Sections: []model.ModuleSection{
			{ID: "dim-modeling-1", Title: "事实与维度", Content: "粒度声明与可加性。"},
			{ID: "dim-modeling-2", Title: "缓慢变化维", Content: "SCD Type 1/2/3 的取舍。"},
		},
		Prerequisites:    []string{"sql-foundations"},
		XPReward:         150,
		EstimatedMinutes: 55,
	},
	{
		ID:          "etl-pipelines",
		Topic:       "etl",
		Difficulty:  model.DifficultyIntermediate,
		Title:       "构建 ETL 管道",
		Description: "批处理管道、幂等加载与增量抽取。",
		Sections: []model.ModuleSection{
			{ID: "etl-pipelines-1", Title: "抽取策略", Content: "全量、增量与CDC。"},
			{ID: "etl-pipelines-2", Title: "幂等加载", Content: "UPSERT、分区覆盖与重跑安全。"},
		},
		Prerequisites:    []string{"sql-foundations"},
		XPReward:         150,
		EstimatedMinutes: 45,
	},
	{
		ID:          "warehouse-internals",
		Topic:       "warehousing",
		Difficulty:  model.DifficultyAdvanced,
		Title:       "数仓内核",
		Description: "列式存储、分区裁剪与物化视图。",
		Sections: []model.ModuleSection{
			{ID: "warehouse-internals-1", Title: "列式存储", Content: "编码、压缩与谓词下推。"},
			{ID: "warehouse-internals-2", Title: "分区设计", Content: "分区键选择与小文件问题。"},
		},
		Prerequisites:    []string{"dimensional-modeling", "etl-pipelines"},
		XPReward:         200,
		EstimatedMinutes: 65,
	},
	{
		ID:          "stream-processing",
		Topic:       "streaming",
		Difficulty:  model.DifficultyAdvanced,
		Title:       "流式处理",
		Description: "事件时间、水位线与恰好一次语义。",
		Sections: []model.ModuleSection{
			{ID: "stream-processing-1", Title: "时间语义", Content: "事件时间、处理时间与乱序。"},
			{ID: "stream-processing-2", Title: "一致性", Content: "至少一次、至多一次与恰好一次。"},
		},
		Prerequisites:    []string{"etl-pipelines"},
		XPReward:         200,
		EstimatedMinutes: 70,
	},
	{
		ID:          "dag-orchestration",
		Topic:       "orchestration",
		Difficulty:  model.DifficultyIntermediate,
		Title:       "DAG 编排",
		Description: "依赖建模、重试策略与历史回填。",
		Sections: []model.ModuleSection{
			{ID: "dag-orchestration-1", Title: "DAG 设计", Content: "任务粒度与依赖显式化。"},
			{ID: "dag-orchestration-2", Title: "回填", Content: "按调度区间参数化与幂等重跑。"},
		},
		Prerequisites:    []string{"etl-pipelines"},
		XPReward:         150,
		EstimatedMinutes: 50,
	},
}
