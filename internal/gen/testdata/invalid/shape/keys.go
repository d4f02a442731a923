package shape

//fixedmap:key
type Key struct {
	Name string
}
