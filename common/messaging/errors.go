package messaging

import "errors"

// ErrNotConfigured 未配置消息中间件
var ErrNotConfigured = errors.New("消息中间件未配置")

// ErrInvalidTopic 无效主题错误
var ErrInvalidTopic = errors.New("无效主题")

// ErrConnectionFailed 连接失败错误
var ErrConnectionFailed = errors.New("连接失败")
