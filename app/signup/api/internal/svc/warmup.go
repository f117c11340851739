package svc

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

// Warmup 启动后异步预热目录缓存，失败不影响启动
func (s *ServiceContext) Warmup() {
	if s.Redis == nil {
		return
	}
	threading.GoSafe(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.CatalogueCache.Warmup(ctx); err != nil {
			logx.Errorf("[CatalogueCache] 预热失败: %v", err)
			return
		}
		logx.Info("[CatalogueCache] 预热完成")
	})
}
