package domain

import "fmt"

// Money is an amount in cents.
type Money int64

func Dollars(d int64) Money { return Money(d * 100) }

func (m Money) Mul(n int) Money { return m * Money(n) }

// Percent returns p percent of m, truncated to whole cents.
func (m Money) Percent(p int64) Money { return Money(int64(m) * p / 100) }

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}
