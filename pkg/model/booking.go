package model

// Booking is a reservation made by a named member for a date within a
// class's active range. The identity is assigned by storage and never
// serialized to clients.
type Booking struct {
	ID      int64  `json:"-" bson:"_id"`
	Name    string `json:"name" bson:"name" validate:"required"`
	Date    Date   `json:"date" bson:"date" validate:"required"`
	ClassID int64  `json:"classId" bson:"class_id"`
}
