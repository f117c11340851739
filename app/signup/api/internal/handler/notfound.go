package handler

import (
	"net/http"
	"strings"

	"activity-signup/common/errorx"
	"activity-signup/common/response"
)

// StaticPrefix 静态文件路径前缀
const StaticPrefix = "/static/"

// NotFoundHandler 未匹配路由的兜底处理
//
//   - GET/HEAD /static/*：从 staticDir 读取文件（不列目录）
//   - 其他：JSON 404 {"detail":"Not Found"}
func NotFoundHandler(staticDir string) http.HandlerFunc {
	root := http.Dir(staticDir)

	return func(w http.ResponseWriter, r *http.Request) {
		if (r.Method == http.MethodGet || r.Method == http.MethodHead) &&
			strings.HasPrefix(r.URL.Path, StaticPrefix) &&
			serveStatic(w, r, root, strings.TrimPrefix(r.URL.Path, StaticPrefix)) {
			return
		}

		response.Fail(r.Context(), w, errorx.ErrNotFound())
	}
}

// serveStatic 文件存在且不是目录时写出文件并返回 true
//
// 不用 http.FileServer：它会把 .../index.html 重定向到目录
func serveStatic(w http.ResponseWriter, r *http.Request, root http.FileSystem, name string) bool {
	f, err := root.Open("/" + name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
