package repo

type ProductFilter struct {
	Name     string
	Category string
	Supplier string
	MinPrice *float64
	MaxPrice *float64
	Offset   *int
	Limit    *int
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
