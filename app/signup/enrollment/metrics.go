package enrollment

import (
	"errors"
	"time"

	"activity-signup/common/errorx"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "signup"

// 操作名（metrics label）
const (
	opEnroll   = "enroll"
	opWithdraw = "withdraw"
	opList     = "list"
)

var (
	operationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "enrollment_operations_total",
			Help:      "Total number of enrollment operations by result",
		},
		[]string{"op", "result"},
	)
	sessionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "session_duration_seconds",
			Help:      "Store session duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	membersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "members_created_total",
			Help:      "Total number of members created lazily on first signup",
		},
	)
)

// observe 记录一次会话的耗时和结果
func observe(op string, start time.Time, err error) {
	sessionDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	operationTotal.WithLabelValues(op, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var bizErr *errorx.BizError
	if !errors.As(err, &bizErr) {
		return "error"
	}
	switch bizErr.Code {
	case errorx.CodeActivityNotFound:
		return "activity_not_found"
	case errorx.CodeAlreadyEnrolled:
		return "already_enrolled"
	case errorx.CodeNotEnrolled:
		return "not_enrolled"
	case errorx.CodeServiceUnavailable:
		return "storage_unavailable"
	default:
		return "error"
	}
}
