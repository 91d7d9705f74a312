package model

type Room struct {
	RoomNo     string     `json:"room_no" db:"room_no" validate:"required,max=20"`
	CategoryID int64      `json:"category_id" db:"category_id" validate:"required"`
	FloorID    int64      `json:"floor_id" db:"floor_id" validate:"required"`
	Status     RoomStatus `json:"status" db:"status"`
}

// RoomView is a room joined with its category and floor names.
type RoomView struct {
	Room
	CategoryName string  `json:"category_name" db:"category_name"`
	FloorName    string  `json:"floor_name" db:"floor_name"`
	DailyRate    float64 `json:"daily_rate" db:"daily_rate"`
}
