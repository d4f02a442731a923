package payload

//fixedmap:key
type Key interface{ isKey() }

type Weighted struct{ Weight float64 }

func (Weighted) isKey() {}
