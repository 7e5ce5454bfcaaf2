package scheduler

// FindAvailableRoom 按输入顺序返回第一个可用且容量足够的教室（first-fit）
//
// 不按容量贴合度挑选：靠前的 1000 人教室优先于靠后的 160 人教室。
func FindAvailableRoom(rooms []Room, studentCount int) (Room, bool) {
	for _, room := range rooms {
		if room.Capacity >= studentCount && room.Availability {
			return room, true
		}
	}
	return Room{}, false
}
