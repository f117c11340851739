package messaging

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/zeromicro/go-zero/core/logx"
)

// watermillLogger Watermill 日志适配器，转发到 logx
type watermillLogger struct {
	fields []logx.LogField
}

// newWatermillLogger 创建 Watermill 日志适配器
func newWatermillLogger(serviceName string) watermill.LoggerAdapter {
	return &watermillLogger{
		fields: []logx.LogField{logx.Field("service", serviceName)},
	}
}

func (l *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.logger(fields).Errorf("[Watermill] %s: %v", msg, err)
}

func (l *watermillLogger) Info(msg string, fields watermill.LogFields) {
	l.logger(fields).Infof("[Watermill] %s", msg)
}

func (l *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	l.logger(fields).Debugf("[Watermill] %s", msg)
}

func (l *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	l.logger(fields).Debugf("[Watermill] %s", msg)
}

func (l *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{fields: l.with(fields)}
}

func (l *watermillLogger) logger(fields watermill.LogFields) logx.Logger {
	return logx.WithContext(context.Background()).WithFields(l.with(fields)...)
}

func (l *watermillLogger) with(fields watermill.LogFields) []logx.LogField {
	result := make([]logx.LogField, 0, len(l.fields)+len(fields))
	result = append(result, l.fields...)
	for k, v := range fields {
		result = append(result, logx.Field(k, v))
	}
	return result
}
