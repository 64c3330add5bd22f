package model

type Class struct {
	ID        int64  `json:"id" bson:"_id"`
	Name      string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	StartDate Date   `json:"startDate" bson:"start_date" validate:"required"`
	EndDate   Date   `json:"endDate" bson:"end_date" validate:"required"`
	Capacity  int    `json:"capacity" bson:"capacity" validate:"required,min=1,max=500"`
}

// Covers reports whether date lies within the class schedule, both ends
// included.
func (c *Class) Covers(date Date) bool {
	return !date.Before(c.StartDate) && !date.After(c.EndDate)
}
