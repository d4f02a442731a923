package multifield

//fixedmap:key
type Key interface{ isKey() }

type Pair struct {
	A int
	B int
}

func (Pair) isKey() {}
