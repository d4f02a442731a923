package bitset

//fixedmap:key bitset
type Key interface{ isKey() }

type Simple struct{}

func (Simple) isKey() {}
