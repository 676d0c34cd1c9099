package entity

type Person struct {
	Base
	Name        string `db:"name"`
	TotalBooked int    `db:"total_booked"`
}
