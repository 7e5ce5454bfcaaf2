package scheduler

import "time"

const (
	// SearchHorizonDays 时段搜索窗口（天）
	SearchHorizonDays = 14

	workdayStartHour = 9
	workdayEndHour   = 19
)

// 每日固定候选开考时刻，按顺序尝试
var dailyStartTimes = [...]struct{ hour, minute int }{
	{9, 0},
	{12, 0},
	{14, 30},
}

// FindAvailableTimeSlot 在 startDate 起 14 天内为教室寻找第一个无冲突时段
//
// 逐日、逐个固定开考时刻尝试，最多 14×3 个候选。duration<=0 时取默认 150 分钟。
// 工作时段检查只比较结束时刻的小时数：结束于 19:00 被拒绝，18:59 可以通过。
func FindAvailableTimeSlot(existing []ExamSlot, room Room, duration int, startDate time.Time) (ExamSlot, bool) {
	if duration <= 0 {
		duration = DefaultExamDuration
	}

	day := truncateToDate(startDate)
	for i := 0; i < SearchHorizonDays; i++ {
		for _, st := range dailyStartTimes {
			start := time.Date(day.Year(), day.Month(), day.Day(), st.hour, st.minute, 0, 0, day.Location())
			end := start.Add(time.Duration(duration) * time.Minute)

			if start.Hour() < workdayStartHour || end.Hour() >= workdayEndHour {
				continue
			}

			candidate := ExamSlot{
				RoomID:    room.ID,
				Date:      start.Format(dateLayout),
				StartTime: start.Format(clockLayout),
				EndTime:   end.Format(clockLayout),
			}
			if !HasTimeConflict(existing, candidate) {
				return candidate, true
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return ExamSlot{}, false
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
