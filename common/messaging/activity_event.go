package messaging

import "time"

// ==================== Topic 定义 ====================

const (
	TopicActivityMemberJoined = "activity.member.joined"
	TopicActivityMemberLeft   = "activity.member.left"
)

// ==================== 事件结构体 ====================

// ActivityMemberJoinedEvent 报名成功事件
type ActivityMemberJoinedEvent struct {
	ActivityID   uint64    `json:"activity_id"`
	ActivityName string    `json:"activity_name"`
	MemberID     uint64    `json:"member_id"`
	Email        string    `json:"email"`
	JoinedAt     time.Time `json:"joined_at"`
}

// ActivityMemberLeftEvent 退出报名事件
type ActivityMemberLeftEvent struct {
	ActivityID   uint64    `json:"activity_id"`
	ActivityName string    `json:"activity_name"`
	MemberID     uint64    `json:"member_id"`
	Email        string    `json:"email"`
	LeftAt       time.Time `json:"left_at"`
}
