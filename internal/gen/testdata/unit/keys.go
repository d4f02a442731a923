package unit

//fixedmap:key
type Color int

const (
	Red Color = iota
	Green
	Blue
)

//fixedmap:key bitset
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)
