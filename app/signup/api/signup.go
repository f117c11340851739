// ============================================================================
// 活动报名服务入口
// ============================================================================
//
// 功能说明：
//   - 活动目录浏览（含报名名单）
//   - 按邮箱报名 / 退出
//   - 静态页面（/static/*）
//
// 启动命令：
//   go run signup.go -f etc/signup-api.yaml
//
// ============================================================================

package main

import (
	"flag"
	"fmt"

	"activity-signup/app/signup/api/internal/config"
	"activity-signup/app/signup/api/internal/handler"
	"activity-signup/app/signup/api/internal/svc"
	"activity-signup/common/response"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/signup-api.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// .env 可选，不存在时忽略
	_ = godotenv.Load()

	// 全局错误处理器（必须在 server.Start() 之前）
	response.SetupGlobalErrorHandler()

	// ==================== 1. 加载配置 ====================
	var c config.Config
	conf.MustLoad(*configFile, &c, conf.UseEnv())

	// ==================== 2. 创建 REST 服务器 ====================
	server := rest.MustNewServer(c.RestConf, rest.WithNotFoundHandler(handler.NotFoundHandler(c.StaticDir)))
	defer server.Stop()

	// ==================== 3. 初始化服务上下文（建表、种子数据） ====================
	ctx := svc.NewServiceContext(c)
	defer ctx.Close()
	ctx.Warmup()

	// ==================== 4. 注册路由和中间件 ====================
	handler.RegisterHandlers(server, ctx)

	// ==================== 5. 启动服务 ====================
	fmt.Printf("Starting signup-api server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}
