// Package scheduler 考试排期核心：课程校验、教室分配、时段搜索与冲突检测。
//
// 包内所有函数均为纯函数，只操作调用方传入的内存集合，不做任何 I/O，
// 也不修改入参；状态变更通过返回新的 State 体现。
package scheduler

import "fmt"

// Course 待排期课程
type Course struct {
	ID            string
	Code          string
	Name          string
	StudentCount  int
	Duration      int // 分钟，0 表示使用默认时长
	PreferredTime string
	Constraints   []string
}

// Room 考场
// Features 仅作展示，不参与分配
type Room struct {
	ID           string
	Name         string
	Capacity     int
	Features     []string
	Availability bool
}

// ExamSlot 考试时段：课程 → 教室 + 日期 + 起止时间
type ExamSlot struct {
	CourseID  string
	RoomID    string
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
}

// ConflictKind 冲突类型
type ConflictKind string

const (
	// ConflictRoomExhausted 无满足容量的可用教室
	ConflictRoomExhausted ConflictKind = "room_exhausted"
	// ConflictSlotExhausted 已选教室在搜索窗口内无空闲时段
	ConflictSlotExhausted ConflictKind = "slot_exhausted"
	// ConflictSlotInvalidated 教室被删除导致已排时段失效
	ConflictSlotInvalidated ConflictKind = "slot_invalidated"
)

// Conflict 结构化冲突记录
type Conflict struct {
	Kind         ConflictKind
	CourseID     string
	CourseCode   string
	RoomID       string
	StudentCount int
	HorizonDays  int
}

// Message 生成与旧版界面一致的冲突文案
func (c Conflict) Message() string {
	switch c.Kind {
	case ConflictRoomExhausted:
		return fmt.Sprintf("No suitable room found for %s (%d students)", c.CourseCode, c.StudentCount)
	case ConflictSlotExhausted:
		return fmt.Sprintf("No available time slot found for %s in the next %d days", c.CourseCode, c.HorizonDays)
	case ConflictSlotInvalidated:
		return fmt.Sprintf("Room removal affects scheduled exam: %s", c.CourseCode)
	default:
		return string(c.Kind)
	}
}

// State 排期聚合根
type State struct {
	Courses   []Course
	Rooms     []Room
	Slots     []ExamSlot
	Conflicts []Conflict
}

// Clone 浅拷贝各集合，保证对返回值的 append 不会影响原切片
func (s State) Clone() State {
	return State{
		Courses:   append([]Course(nil), s.Courses...),
		Rooms:     append([]Room(nil), s.Rooms...),
		Slots:     append([]ExamSlot(nil), s.Slots...),
		Conflicts: append([]Conflict(nil), s.Conflicts...),
	}
}

// SlotFor 查找课程对应的考试时段
func (s State) SlotFor(courseID string) (ExamSlot, bool) {
	for _, sl := range s.Slots {
		if sl.CourseID == courseID {
			return sl, true
		}
	}
	return ExamSlot{}, false
}
