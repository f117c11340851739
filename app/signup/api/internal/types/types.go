package types

// SignupRequest 报名/退出请求
//
// activity_name 来自路径（已 URL 解码），email 来自查询参数
// email 允许为空串，是否携带由 handler 校验
type SignupRequest struct {
	ActivityName string `path:"activity_name"`
	Email        string `form:"email,optional"`
}

// MessageResponse 报名/退出成功响应
type MessageResponse struct {
	Message string `json:"message"`
}

// ActivityEntry 活动列表中的单个活动
type ActivityEntry struct {
	Description     *string  `json:"description"`
	Schedule        *string  `json:"schedule"`
	MaxParticipants *int     `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// ActivityListResponse 活动列表，key 为活动名称
type ActivityListResponse map[string]ActivityEntry

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
	Database  string `json:"database"`
}
