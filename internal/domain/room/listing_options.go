package room

import "fmt"

// Location is one of the cities rooms can be listed in.
type Location string

const (
	LocationKathmandu  Location = "Kathmandu"
	LocationPokhara    Location = "Pokhara"
	LocationBiratnagar Location = "Biratnagar"
)

// Locations lists every location in display order.
var Locations = []Location{LocationKathmandu, LocationPokhara, LocationBiratnagar}

// IsValid returns true if the location is recognized.
func (l Location) IsValid() bool {
	switch l {
	case LocationKathmandu, LocationPokhara, LocationBiratnagar:
		return true
	}
	return false
}

// RoomType describes how a room is occupied.
type RoomType string

const (
	RoomTypeSingle RoomType = "Single"
	RoomTypeDouble RoomType = "Double"
	RoomTypeShared RoomType = "Shared"
)

// RoomTypes lists every room type in display order.
var RoomTypes = []RoomType{RoomTypeSingle, RoomTypeDouble, RoomTypeShared}

// IsValid returns true if the room type is recognized.
func (t RoomType) IsValid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeShared:
		return true
	}
	return false
}

// ParseLocation converts a string to a Location, returning an error if invalid.
func ParseLocation(s string) (Location, error) {
	l := Location(s)
	if !l.IsValid() {
		return "", fmt.Errorf("invalid location: %s", s)
	}
	return l, nil
}

// ParseRoomType converts a string to a RoomType, returning an error if invalid.
func ParseRoomType(s string) (RoomType, error) {
	t := RoomType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid room type: %s", s)
	}
	return t, nil
}
