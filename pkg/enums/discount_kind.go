package enums

import "fmt"

// DiscountKind names how a coupon's discount value is interpreted.
type DiscountKind string

const (
	DiscountKindAmount     DiscountKind = "amount"
	DiscountKindPercentage DiscountKind = "percentage"
)

var validDiscountKinds = []DiscountKind{
	DiscountKindAmount,
	DiscountKindPercentage,
}

// String implements fmt.Stringer.
func (k DiscountKind) String() string {
	return string(k)
}

// IsValid reports whether the discount kind is recognized.
func (k DiscountKind) IsValid() bool {
	for _, candidate := range validDiscountKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseDiscountKind converts a raw string into a DiscountKind.
func ParseDiscountKind(value string) (DiscountKind, error) {
	for _, candidate := range validDiscountKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount kind %q", value)
}
