package catalog

import "dataforge_backend/internal/model"

var Flashcards = []model.Flashcard{
	{ID: "fc-sql-001", Topic: "sql", Front: "WHERE 与 HAVING 的区别", Back: "WHERE 在分组前过滤行，HAVING 在聚合后过滤分组。"},
	{ID: "fc-sql-002", Topic: "sql", Front: "窗口函数的帧子句", Back: "ROWS BETWEEN 定义参与计算的行范围，默认到当前行。"},
	{ID: "fc-sql-003", Topic: "sql", Front: "半连接", Back: "EXISTS/IN 只判断存在性，不会放大行数。"},
	{ID: "fc-model-001", Topic: "data-modeling", Front: "事实表粒度", Back: "一行代表的业务事件级别，建模之初声明并全表一致。"},
	{ID: "fc-model-002", Topic: "data-modeling", Front: "SCD Type 2", Back: "变化时新增版本行，valid_from/valid_to 维护生效区间。"},
	{ID: "fc-etl-001", Topic: "etl", Front: "幂等加载", Back: "UPSERT 或分区覆盖，任意次重跑结果相同。"},
	{ID: "fc-etl-002", Topic: "etl", Front: "CDC", Back: "从事务日志捕获变更，避免对源表的重查询。"},
	{ID: "fc-wh-001", Topic: "warehousing", Front: "分区裁剪", Back: "谓词命中分区键时跳过无关分区。"},
	{ID: "fc-wh-002", Topic: "warehousing", Front: "谓词下推", Back: "把过滤条件推到存储层，减少解压与扫描。"},
	{ID: "fc-stream-001", Topic: "streaming", Front: "水位线", Back: "事件时间进度的声明，驱动窗口关闭。"},
	{ID: "fc-stream-002", Topic: "streaming", Front: "恰好一次", Back: "幂等写入 + 事务性提交，端到端去重。"},
	{ID: "fc-orch-001", Topic: "orchestration", Front: "回填", Back: "按调度区间参数化、幂等重跑历史区间。"},
}
