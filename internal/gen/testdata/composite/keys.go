package composite

//fixedmap:key
type Part int

const (
	First Part = iota
	Second
)

//fixedmap:key
type Key interface{ isKey() }

type Simple struct{}

type WithPart struct{ Part Part }

type WithName struct{ Name string }

type WithFlag struct{ On bool }

func (Simple) isKey()   {}
func (WithPart) isKey() {}
func (WithName) isKey() {}
func (WithFlag) isKey() {}
