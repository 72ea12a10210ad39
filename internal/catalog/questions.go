package catalog

import "dataforge_backend/internal/model"

// Questions 测验题库；XP奖励随难度 10/20/30
var Questions = []model.Question{
	{
		ID: "q-sql-001", Topic: "sql", Difficulty: model.DifficultyBeginner, Type: model.MultipleChoice,
		Prompt:      "哪个子句用于对分组后的结果进行过滤？",
		Options:     []string{"WHERE", "HAVING", "GROUP BY", "ORDER BY"},
		Answer:      "HAVING",
		Explanation: "WHERE 在分组前过滤行，HAVING 在聚合后过滤分组。",
		Hints:       []string{"发生在 GROUP BY 之后"},
		XPReward:    10, TimeLimitSec: 30,
	},
	{
		ID: "q-sql-002", Topic: "sql", Difficulty: model.DifficultyBeginner, Type: model.MultipleChoice,
		Prompt:      "COUNT(*) 和 COUNT(col) 的区别是什么？",
		Options:     []string{"没有区别", "COUNT(col) 忽略 NULL", "COUNT(*) 忽略 NULL", "COUNT(col) 更快"},
		Answer:      "COUNT(col) 忽略 NULL",
		Explanation: "COUNT(*) 统计所有行，COUNT(col) 只统计该列非 NULL 的行。",
		XPReward:    10, TimeLimitSec: 30,
	},
	{
		ID: "q-sql-003", Topic: "sql", Difficulty: model.DifficultyIntermediate, Type: model.MultipleChoice,
		Prompt:      "LEFT JOIN 后右表无匹配时，右表的列值是什么？",
		Options:     []string{"空字符串", "0", "NULL", "该行被丢弃"},
		Answer:      "NULL",
		Explanation: "外连接保留驱动表的行，无匹配侧填充 NULL。",
		XPReward:    20, TimeLimitSec: 45,
	},
	{
		ID: "q-sql-004", Topic: "sql", Difficulty: model.DifficultyAdvanced, Type: model.MultipleChoice,
		Prompt:      "RANK() 与 DENSE_RANK() 在并列名次后的行为差异是？",
		Options:     []string{"完全相同", "RANK 跳号，DENSE_RANK 不跳号", "DENSE_RANK 跳号，RANK 不跳号", "两者都不处理并列"},
		Answer:      "RANK 跳号，DENSE_RANK 不跳号",
		Explanation: "RANK 在并列后留下空档（1,1,3），DENSE_RANK 连续编号（1,1,2）。",
		Hints:       []string{"想一想 1,1,? 的下一个值"},
		XPReward:    30, TimeLimitSec: 60,
	},
	{
		ID: "q-sql-005", Topic: "sql", Difficulty: model.DifficultyAdvanced, Type: model.FreeForm,
		Prompt:      "写出按 user_id 分组、按 created_at 取每组最新一行的窗口函数名。",
		Answer:      "ROW_NUMBER",
		Explanation: "ROW_NUMBER() OVER (PARTITION BY user_id ORDER BY created_at DESC) = 1。",
		XPReward:    30,
	},
	{
		ID: "q-model-001", Topic: "data-modeling", Difficulty: model.DifficultyBeginner, Type: model.MultipleChoice,
		Prompt:      "星型模式中，事实表存放的是什么？",
		Options:     []string{"描述性属性", "可度量的业务事件", "层级关系", "主数据"},
		Answer:      "可度量的业务事件",
		Explanation: "事实表按声明的粒度记录度量值，维度表存描述性属性。",
		XPReward:    10, TimeLimitSec: 30,
	},
	{
		ID: "q-model-002", Topic: "data-modeling", Difficulty: model.DifficultyIntermediate, Type: model.MultipleChoice,
		Prompt:      "SCD Type 2 如何保留历史？",
		Options:     []string{"覆盖旧值", "新增一行并维护生效区间", "增加一列存上一个值", "不保留历史"},
		Answer:      "新增一行并维护生效区间",
		Explanation: "Type 2 为每次变化插入新版本行，用 valid_from/valid_to 标记区间。",
		XPReward:    20, TimeLimitSec: 45,
	},
	{
		ID: "q-model-003", Topic: "data-modeling", Difficulty: model.DifficultyAdvanced, Type: model.FreeForm,
		Prompt:      "一个事实表的粒度应该在什么时候声明？",
		Answer:      "建模之初",
		Explanation: "粒度声明是维度建模的第一步，所有度量与维度都必须与之一致。",
		XPReward:    30,
	},
	{
		ID: "q-etl-001", Topic: "etl", Difficulty: model.DifficultyBeginner, Type: model.MultipleChoice,
		Prompt:      "增量抽取相比全量抽取的主要优势是？",
		Options:     []string{"实现更简单", "减少数据传输量", "不需要水位线", "结果更准确"},
		Answer:      "减少数据传输量",
		Explanation: "增量只搬运变化的数据，代价是需要维护抽取水位线。",
		XPReward:    10, TimeLimitSec: 30,
	},
	{
		ID: "q-etl-002", Topic: "etl", Difficulty: model.DifficultyIntermediate, Type: model.MultipleChoice,
		Prompt:      "管道重跑不产生重复数据的性质叫什么？",
		Options:     []string{"原子性", "幂等性", "隔离性", "持久性"},
		Answer:      "幂等性",
		Explanation: "幂等加载（UPSERT、分区覆盖）让任意次重跑得到相同结果。",
		Hints:       []string{"f(f(x)) = f(x)"},
		XPReward:    20, TimeLimitSec: 45,
	},
	{
		ID: "q-etl-003", Topic: "etl", Difficulty: model.DifficultyAdvanced, Type: model.FreeForm,
		Prompt:      "从数据库事务日志捕获变更的技术缩写是什么？",
		Answer:      "CDC",
		Explanation: "Change Data Capture 读取 binlog/WAL，避免对源表的重查询。",
		XPReward:    30,
	},
	{
		ID: "q-wh-001", Topic: "warehousing", Difficulty: model.DifficultyBeginner, Type: model.MultipleChoice,
		Prompt:      "列式存储对哪类负载最有利？",
		Options:     []string{"单行点查", "高频小事务", "大范围聚合分析", "全行更新"},
		Answer:      "大范围聚合分析",
		Explanation: "分析查询通常只触及少数列，列存只读所需列并高效压缩。",
		XPReward:    10, TimeLimitSec: 30,
	},
	{
		ID: "q-wh-002", Topic: "warehousing", Difficulty: model.DifficultyIntermediate, Type: model.MultipleChoice,
		Prompt:      "分区裁剪的前提条件是什么？",
		Options:     []string{"表足够大", "查询谓词命中分区键", "使用列式格式", "统计信息最新"},
		Answer:      "查询谓词命中分区键",
		Explanation: "只有过滤条件落在分区键上，引擎才能跳过无关分区。",
		XPReward:    20, TimeLimitSec: 45,
	},
	{
		ID: "q-stream-001", Topic: "streaming", Difficulty: model.DifficultyIntermediate, Type: model.MultipleChoice,
		Prompt:      "水位线（watermark）的作用是什么？",
		Options:     []string{"限制吞吐量", "声明事件时间进度以触发窗口", "压缩消息", "保证消息顺序"},
		Answer:      "声明事件时间进度以触发窗口",
		Explanation: "水位线表示\"不再期待更早的事件\"，驱动事件时间窗口的关闭。",
		XPReward:    20, TimeLimitSec: 45,
	},
	{
		ID: "q-stream-002", Topic: "streaming", Difficulty: model.DifficultyAdvanced, Type: model.MultipleChoice,
		Prompt:      "恰好一次语义通常靠什么组合实现？",
		Options:     []string{"更大的缓冲区", "幂等写入加事务性提交", "更快的网络", "单线程消费"},
		Answer:      "幂等写入加事务性提交",
		Explanation: "重试必然带来重复投递，端到端去重要靠幂等sink或两阶段提交。",
		XPReward:    30, TimeLimitSec: 60,
	},
	{
		ID: "q-orch-001", Topic: "orchestration", Difficulty: model.DifficultyBeginner, Type: model.MultipleChoice,
		Prompt:      "调度系统里任务依赖通常建模成什么结构？",
		Options:     []string{"环形链表", "有向无环图", "二叉树", "哈希表"},
		Answer:      "有向无环图",
		Explanation: "DAG 保证依赖可拓扑排序，不存在循环等待。",
		XPReward:    10, TimeLimitSec: 30,
	},
	{
		ID: "q-orch-002", Topic: "orchestration", Difficulty: model.DifficultyIntermediate, Type: model.MultipleChoice,
		Prompt:      "回填（backfill）要求任务满足什么性质？",
		Options:     []string{"无状态", "按调度区间参数化且幂等", "串行执行", "手动触发"},
		Answer:      "按调度区间参数化且幂等",
		Explanation: "任务以区间为参数、重跑幂等，才能安全重算历史区间。",
		XPReward:    20, TimeLimitSec: 45,
	},
	{
		ID: "q-orch-003", Topic: "orchestration", Difficulty: model.DifficultyAdvanced, Type: model.FreeForm,
		Prompt:      "任务失败后按指数增长间隔重试的策略叫什么？",
		Answer:      "指数退避",
		Explanation: "exponential backoff 避免失败风暴压垮下游。",
		XPReward:    30,
	},
}
