// 手动清除指定用户的进度存档槽
//
// 常规的进度重置走 POST /api/progress/reset。此脚本仅用于运维场景，
// 例如存档格式升级后批量清理，或用户删号后的数据清除。
//
// 用法: go run scripts/wipe_progress.go <userId> [userId...]

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-redis/redis/v8"
	"gopkg.in/yaml.v3"

	"dataforge_backend/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "用法: go run scripts/wipe_progress.go <userId> [userId...]")
		os.Exit(1)
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis 连接失败: %v", err)
	}

	for _, arg := range os.Args[1:] {
		userID, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			log.Printf("跳过非法的用户ID %q: %v", arg, err)
			continue
		}

		key := fmt.Sprintf("dataforge:progress:%d", userID)
		deleted, err := client.Del(ctx, key).Result()
		if err != nil {
			log.Fatalf("删除 %s 失败: %v", key, err)
		}
		if deleted == 0 {
			log.Printf("用户 %d 没有进度存档，跳过", userID)
		} else {
			log.Printf("已清除用户 %d 的进度存档", userID)
		}
	}
}
