package catalog

import "dataforge_backend/internal/model"

// Topics 主题闭集；模块、题目、闪卡只能引用这里的ID
var Topics = []model.Topic{
	{ID: "sql", Name: "SQL", Description: "查询、连接、窗口函数与执行计划"},
	{ID: "data-modeling", Name: "数据建模", Description: "范式、维度建模与星型模式"},
	{ID: "etl", Name: "ETL 与数据管道", Description: "抽取、转换、加载与增量处理"},
	{ID: "warehousing", Name: "数据仓库", Description: "列式存储、分区与物化视图"},
	{ID: "streaming", Name: "流式处理", Description: "消息队列、窗口计算与一致性语义"},
	{ID: "orchestration", Name: "任务编排", Description: "DAG调度、重试与回填"},
}
