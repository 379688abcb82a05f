package model

import "strings"

type Room struct {
	ID   string `csv:"Room_ID"`
	Type string `csv:"Type"`
}

// RoomPools splits rooms into the two disjoint pools the placer draws from.
type RoomPools struct {
	Classrooms []string
	Labs       []string
}

// NewRoomPools sorts rooms by their case-insensitive type. Rooms that are
// neither "classroom" nor "lab" are dropped.
func NewRoomPools(rooms []*Room) RoomPools {
	var pools RoomPools
	for _, r := range rooms {
		switch strings.ToLower(strings.TrimSpace(r.Type)) {
		case "classroom":
			pools.Classrooms = append(pools.Classrooms, strings.TrimSpace(r.ID))
		case "lab":
			pools.Labs = append(pools.Labs, strings.TrimSpace(r.ID))
		}
	}
	return pools
}

// For returns the pool a session of the given kind must use.
func (p RoomPools) For(kind SessionType) []string {
	if kind == Practical {
		return p.Labs
	}
	return p.Classrooms
}
