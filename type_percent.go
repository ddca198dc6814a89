package simulador

import "fmt"

// Percent is a percentage value: 42.5 means 42.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Within reports whether p is within tol of q.
func (p Percent) Within(q, tol Percent) bool {
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
