package gaps

//fixedmap:key
type Code int

const (
	OK Code = iota
	Warn
	Fatal Code = 9
)
