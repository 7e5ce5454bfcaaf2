package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/akiblasco/SchedulerUBC/internal/model"
	"github.com/akiblasco/SchedulerUBC/internal/repository"
	"github.com/akiblasco/SchedulerUBC/internal/scheduler"
	pkgerrors "github.com/akiblasco/SchedulerUBC/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock CourseRepository ──
// 切片保存，保持录入顺序

type mockCourseRepo struct {
	courses []model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		course.CourseID = fmt.Sprintf("course-%d", len(m.courses)+1)
	}
	course.Seq = int64(len(m.courses) + 1)
	course.CreatedAt = time.Now()
	m.courses = append(m.courses, *course)
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	for i := range m.courses {
		if m.courses[i].CourseID == id {
			c := m.courses[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	return append([]model.Course(nil), m.courses...), nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	kept := m.courses[:0]
	for _, c := range m.courses {
		if c.CourseID != id {
			kept = append(kept, c)
		}
	}
	m.courses = kept
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms []model.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		room.RoomID = fmt.Sprintf("room-%d", len(m.rooms)+1)
	}
	room.Seq = int64(len(m.rooms) + 1)
	if room.Version == 0 {
		room.Version = 1
	}
	room.CreatedAt = time.Now()
	room.UpdatedAt = room.CreatedAt
	m.rooms = append(m.rooms, *room)
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	for i := range m.rooms {
		if m.rooms[i].RoomID == id {
			r := m.rooms[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context) ([]model.Room, error) {
	return append([]model.Room(nil), m.rooms...), nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	for i := range m.rooms {
		if m.rooms[i].RoomID != room.RoomID {
			continue
		}
		if m.rooms[i].Version != room.Version {
			return pkgerrors.ErrOptimisticLock
		}
		room.Version++
		m.rooms[i] = *room
		return nil
	}
	return pkgerrors.ErrOptimisticLock
}

func (m *mockRoomRepo) Delete(_ context.Context, id string) error {
	kept := m.rooms[:0]
	for _, r := range m.rooms {
		if r.RoomID != id {
			kept = append(kept, r)
		}
	}
	m.rooms = kept
	return nil
}

// ── Mock ExamSlotRepository ──
// 预加载通过引用课程/考场 mock 实现

type mockExamSlotRepo struct {
	slots   []model.ExamSlot
	courses *mockCourseRepo
	rooms   *mockRoomRepo
}

func newMockExamSlotRepo(courses *mockCourseRepo, rooms *mockRoomRepo) *mockExamSlotRepo {
	return &mockExamSlotRepo{courses: courses, rooms: rooms}
}

func (m *mockExamSlotRepo) Create(_ context.Context, slot *model.ExamSlot) error {
	for _, s := range m.slots {
		if s.CourseID == slot.CourseID {
			return fmt.Errorf("duplicate key: course_id %s", slot.CourseID)
		}
	}
	if slot.ExamSlotID == "" {
		slot.ExamSlotID = fmt.Sprintf("slot-%d", len(m.slots)+1)
	}
	stored := *slot
	stored.Course, stored.Room = nil, nil
	m.slots = append(m.slots, stored)
	return nil
}

func (m *mockExamSlotRepo) withDetails(s model.ExamSlot) model.ExamSlot {
	if c, err := m.courses.GetByID(context.Background(), s.CourseID); err == nil {
		s.Course = c
	}
	if r, err := m.rooms.GetByID(context.Background(), s.RoomID); err == nil {
		s.Room = r
	}
	return s
}

func (m *mockExamSlotRepo) GetByCourse(_ context.Context, courseID string) (*model.ExamSlot, error) {
	for _, s := range m.slots {
		if s.CourseID == courseID {
			out := m.withDetails(s)
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamSlotRepo) List(_ context.Context) ([]model.ExamSlot, error) {
	return append([]model.ExamSlot(nil), m.slots...), nil
}

func (m *mockExamSlotRepo) ListWithDetails(_ context.Context) ([]model.ExamSlot, error) {
	out := make([]model.ExamSlot, 0, len(m.slots))
	for _, s := range m.slots {
		out = append(out, m.withDetails(s))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ExamDate != out[j].ExamDate {
			return out[i].ExamDate < out[j].ExamDate
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (m *mockExamSlotRepo) DeleteByCourse(_ context.Context, courseID string) error {
	kept := m.slots[:0]
	for _, s := range m.slots {
		if s.CourseID != courseID {
			kept = append(kept, s)
		}
	}
	m.slots = kept
	return nil
}

func (m *mockExamSlotRepo) DeleteByRoom(_ context.Context, roomID string) error {
	kept := m.slots[:0]
	for _, s := range m.slots {
		if s.RoomID != roomID {
			kept = append(kept, s)
		}
	}
	m.slots = kept
	return nil
}

// ── Mock ConflictRepository ──

type mockConflictRepo struct {
	conflicts []model.Conflict
	next      int
}

func newMockConflictRepo() *mockConflictRepo {
	return &mockConflictRepo{}
}

func (m *mockConflictRepo) Create(_ context.Context, conflict *model.Conflict) error {
	m.next++
	if conflict.ConflictID == "" {
		conflict.ConflictID = fmt.Sprintf("conflict-%d", m.next)
	}
	conflict.Seq = int64(m.next)
	conflict.CreatedAt = time.Now()
	m.conflicts = append(m.conflicts, *conflict)
	return nil
}

func (m *mockConflictRepo) BatchCreate(ctx context.Context, conflicts []model.Conflict) error {
	for i := range conflicts {
		if err := m.Create(ctx, &conflicts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockConflictRepo) List(_ context.Context) ([]model.Conflict, error) {
	return append([]model.Conflict(nil), m.conflicts...), nil
}

func (m *mockConflictRepo) Delete(_ context.Context, id string) error {
	kept := m.conflicts[:0]
	for _, c := range m.conflicts {
		if c.ConflictID != id {
			kept = append(kept, c)
		}
	}
	m.conflicts = kept
	return nil
}

// ── 测试辅助 ──

type mockRepos struct {
	users     *mockUserRepo
	courses   *mockCourseRepo
	rooms     *mockRoomRepo
	slots     *mockExamSlotRepo
	conflicts *mockConflictRepo
}

// newMockRepository 未绑定数据库，Transaction 直接在当前聚合上执行
func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		users:     newMockUserRepo(),
		courses:   newMockCourseRepo(),
		rooms:     newMockRoomRepo(),
		conflicts: newMockConflictRepo(),
	}
	m.slots = newMockExamSlotRepo(m.courses, m.rooms)

	repo := &repository.Repository{
		User:     m.users,
		Course:   m.courses,
		Room:     m.rooms,
		ExamSlot: m.slots,
		Conflict: m.conflicts,
	}
	return repo, m
}

// seedRooms 写入与初始迁移一致的三个考场
func (m *mockRepos) seedRooms() {
	ctx := context.Background()
	_ = m.rooms.Create(ctx, &model.Room{RoomID: "lsc2", Name: "Life Sciences Centre 2", Capacity: 350, Features: []string{"computer"}, IsAvailable: true})
	_ = m.rooms.Create(ctx, &model.Room{RoomID: "irc2", Name: "Woodward IRC 2", Capacity: 250, Features: []string{"standard"}, IsAvailable: true})
	_ = m.rooms.Create(ctx, &model.Room{RoomID: "fsc1005", Name: "Forest Sciences Centre 1005", Capacity: 200, Features: []string{"standard"}, IsAvailable: true})
}

// testClock 2024-04-15（周一）16:45，搜索从当天零点开始
func testClock() time.Time {
	return time.Date(2024, 4, 15, 16, 45, 0, 0, time.Local)
}

func newTestScheduler() *scheduler.Scheduler {
	return scheduler.NewWithClock(testClock)
}

func newTestLocker() Locker {
	return NewLocker(nil, "test", time.Second, zap.NewNop())
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
