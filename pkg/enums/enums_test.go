package enums

import "testing"

func TestParseDiscountKind(t *testing.T) {
	for _, raw := range []string{"amount", "percentage"} {
		kind, err := ParseDiscountKind(raw)
		if err != nil {
			t.Fatalf("ParseDiscountKind(%q) error = %v", raw, err)
		}
		if !kind.IsValid() || kind.String() != raw {
			t.Fatalf("unexpected kind %q for %q", kind, raw)
		}
	}

	if _, err := ParseDiscountKind("flat"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if DiscountKind("AMOUNT").IsValid() {
		t.Fatal("discount kinds are case sensitive")
	}
}

func TestParseRoundingMode(t *testing.T) {
	cases := map[string]RoundingMode{
		"":          RoundingFloor,
		"floor":     RoundingFloor,
		" HALF_UP ": RoundingHalfUp,
	}
	for raw, want := range cases {
		got, err := ParseRoundingMode(raw)
		if err != nil {
			t.Fatalf("ParseRoundingMode(%q) error = %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseRoundingMode(%q) = %q, want %q", raw, got, want)
		}
	}

	if _, err := ParseRoundingMode("bankers"); err == nil {
		t.Fatal("expected error for unknown rounding mode")
	}
}
