package scheduler

import "time"

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	dateTimeLayout = dateLayout + " " + clockLayout
)

// HasTimeConflict 检查候选时段是否与任一已排时段重叠
//
// 仅比较同教室同日期的时段；不同教室或不同日期永不冲突。
// 重叠判定（任一成立即冲突）：
//   - 候选开始 ∈ [已有开始, 已有结束)
//   - 候选结束 ∈ (已有开始, 已有结束]
//   - 候选完全包含已有区间
//
// 时间按本地时区的 日期+时刻 解析，无法解析的时段不参与冲突判定。
func HasTimeConflict(existing []ExamSlot, candidate ExamSlot) bool {
	for _, slot := range existing {
		if slot.RoomID != candidate.RoomID || slot.Date != candidate.Date {
			continue
		}
		if overlaps(slot, candidate) {
			return true
		}
	}
	return false
}

func overlaps(existing, candidate ExamSlot) bool {
	es, ok1 := slotInstant(existing.Date, existing.StartTime)
	ee, ok2 := slotInstant(existing.Date, existing.EndTime)
	cs, ok3 := slotInstant(candidate.Date, candidate.StartTime)
	ce, ok4 := slotInstant(candidate.Date, candidate.EndTime)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}

	startInside := !cs.Before(es) && cs.Before(ee)
	endInside := ce.After(es) && !ce.After(ee)
	contains := !cs.After(es) && !ce.Before(ee)

	return startInside || endInside || contains
}

func slotInstant(date, clock string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateTimeLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
