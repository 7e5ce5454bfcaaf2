package scheduler

import "time"

// Outcome 单门课程的排期结果
// 成功时 Slot/Room 非空，失败时 Conflict 非空
type Outcome struct {
	Slot     *ExamSlot
	Room     *Room
	Conflict *Conflict
}

// Scheduled 是否已成功排期
func (o Outcome) Scheduled() bool {
	return o.Slot != nil
}

// Scheduler 排期编排器：教室分配 → 时段搜索 → 冲突记录
type Scheduler struct {
	clock func() time.Time
}

// New 创建使用系统时钟的 Scheduler
func New() *Scheduler {
	return &Scheduler{clock: time.Now}
}

// NewWithClock 创建使用指定时钟的 Scheduler，搜索起点取时钟当天零点
func NewWithClock(clock func() time.Time) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{clock: clock}
}

// AddCourse 为新课程排期并返回新状态
//
// 教室选定后不再回退尝试其他教室：该教室 14 天内无空闲时段即记为 slot_exhausted。
// 失败时课程仍加入名册，但不生成时段。
func (s *Scheduler) AddCourse(state State, course Course) (State, Outcome) {
	next := state.Clone()
	next.Courses = append(next.Courses, course)

	room, ok := FindAvailableRoom(next.Rooms, course.StudentCount)
	if !ok {
		c := Conflict{
			Kind:         ConflictRoomExhausted,
			CourseID:     course.ID,
			CourseCode:   course.Code,
			StudentCount: course.StudentCount,
		}
		next.Conflicts = append(next.Conflicts, c)
		return next, Outcome{Conflict: &c}
	}

	slot, ok := FindAvailableTimeSlot(next.Slots, room, course.Duration, s.clock())
	if !ok {
		c := Conflict{
			Kind:         ConflictSlotExhausted,
			CourseID:     course.ID,
			CourseCode:   course.Code,
			RoomID:       room.ID,
			StudentCount: course.StudentCount,
			HorizonDays:  SearchHorizonDays,
		}
		next.Conflicts = append(next.Conflicts, c)
		return next, Outcome{Room: &room, Conflict: &c}
	}

	slot.CourseID = course.ID
	next.Slots = append(next.Slots, slot)
	return next, Outcome{Slot: &slot, Room: &room}
}

// ── 状态操作 ──

// DeleteCourse 删除课程及其时段
func DeleteCourse(state State, courseID string) State {
	next := State{
		Rooms:     append([]Room(nil), state.Rooms...),
		Conflicts: append([]Conflict(nil), state.Conflicts...),
	}
	for _, c := range state.Courses {
		if c.ID != courseID {
			next.Courses = append(next.Courses, c)
		}
	}
	for _, sl := range state.Slots {
		if sl.CourseID != courseID {
			next.Slots = append(next.Slots, sl)
		}
	}
	return next
}

// AddRoom 追加教室
func AddRoom(state State, room Room) State {
	next := state.Clone()
	next.Rooms = append(next.Rooms, room)
	return next
}

// RemoveRoom 删除教室及其全部时段，每个被删时段生成一条 slot_invalidated 冲突
// 返回新状态与本次新增的冲突
func RemoveRoom(state State, roomID string) (State, []Conflict) {
	next := State{
		Courses:   append([]Course(nil), state.Courses...),
		Conflicts: append([]Conflict(nil), state.Conflicts...),
	}
	for _, r := range state.Rooms {
		if r.ID != roomID {
			next.Rooms = append(next.Rooms, r)
		}
	}

	var invalidated []Conflict
	for _, sl := range state.Slots {
		if sl.RoomID != roomID {
			next.Slots = append(next.Slots, sl)
			continue
		}
		c := Conflict{
			Kind:     ConflictSlotInvalidated,
			CourseID: sl.CourseID,
			RoomID:   roomID,
		}
		for _, course := range state.Courses {
			if course.ID == sl.CourseID {
				c.CourseCode = course.Code
				c.StudentCount = course.StudentCount
				break
			}
		}
		invalidated = append(invalidated, c)
	}

	next.Conflicts = append(next.Conflicts, invalidated...)
	return next, invalidated
}

// DismissConflict 按下标移除冲突，越界时原样返回
func DismissConflict(state State, index int) State {
	next := state.Clone()
	if index < 0 || index >= len(next.Conflicts) {
		return next
	}
	next.Conflicts = append(next.Conflicts[:index], next.Conflicts[index+1:]...)
	return next
}
