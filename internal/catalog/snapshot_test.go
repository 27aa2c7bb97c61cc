package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-pricing/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
)

func TestReadSnapshotFileSeedsCatalog(t *testing.T) {
	snap, err := ReadSnapshotFile("testdata/seed.json")
	if err != nil {
		t.Fatalf("ReadSnapshotFile() error = %v", err)
	}

	c, err := FromSnapshot(snap, nil)
	if err != nil {
		t.Fatalf("FromSnapshot() error = %v", err)
	}

	products := c.Products()
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	if got := products[2].Discounts[1]; got.Quantity != 30 || !got.Rate.Equal(decimal.RequireFromString("0.25")) {
		t.Fatalf("unexpected tier %+v", got)
	}

	coupon, err := c.CouponByCode("PERCENT10")
	if err != nil {
		t.Fatalf("CouponByCode() error = %v", err)
	}
	if coupon.Discount.Kind() != enums.DiscountKindPercentage {
		t.Fatalf("expected percentage coupon, got %s", coupon.Discount.Kind())
	}
	if !coupon.DiscountValue().Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected value 10, got %s", coupon.DiscountValue())
	}
}

func TestSnapshotRoundTripPreservesOrder(t *testing.T) {
	snap, err := ReadSnapshotFile("testdata/seed.json")
	if err != nil {
		t.Fatalf("ReadSnapshotFile() error = %v", err)
	}
	c, err := FromSnapshot(snap, nil)
	if err != nil {
		t.Fatalf("FromSnapshot() error = %v", err)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(c.Snapshot()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	if len(decoded.Products) != 3 || decoded.Products[0].ID != "p1" || decoded.Products[2].ID != "p3" {
		t.Fatalf("unexpected product order %+v", decoded.Products)
	}
	if !decoded.Products[1].Discounts[0].Rate.Equal(decimal.RequireFromString("0.15")) {
		t.Fatalf("expected rate 0.15, got %v", decoded.Products[1].Discounts[0].Rate)
	}
	if decoded.Coupons[0].DiscountType != "amount" || !decoded.Coupons[0].DiscountValue.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected coupon %+v", decoded.Coupons[0])
	}
}

func TestDecodeSnapshotRejectsBadShape(t *testing.T) {
	cases := map[string]string{
		"unknownField":    `{"products":[],"coupons":[],"extra":true}`,
		"missingID":       `{"products":[{"name":"x","price":1,"stock":1}]}`,
		"unknownDiscount": `{"coupons":[{"code":"X","discount_type":"flat","discount_value":1}]}`,
		"notJSON":         `products: []`,
	}
	for name, raw := range cases {
		raw := raw
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSnapshot(strings.NewReader(raw))
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestFromSnapshotRejectsInvalidValues(t *testing.T) {
	fractionalAmount := Snapshot{Coupons: []CouponDTO{{Code: "X", DiscountType: "amount", DiscountValue: decimal.RequireFromString("10.5")}}}
	if _, err := FromSnapshot(fractionalAmount, nil); !pkgerrors.IsCode(err, pkgerrors.CodeInvalidCoupon) {
		t.Fatalf("expected invalid coupon, got %v", err)
	}

	overHundred := Snapshot{Coupons: []CouponDTO{{Code: "X", DiscountType: "percentage", DiscountValue: decimal.NewFromInt(120)}}}
	if _, err := FromSnapshot(overHundred, nil); !pkgerrors.IsCode(err, pkgerrors.CodeInvalidCoupon) {
		t.Fatalf("expected invalid coupon, got %v", err)
	}

	negativePrice := Snapshot{Products: []ProductDTO{{ID: "p", Name: "x", Price: -10}}}
	if _, err := FromSnapshot(negativePrice, nil); !pkgerrors.IsCode(err, pkgerrors.CodeInvalidProduct) {
		t.Fatalf("expected invalid product, got %v", err)
	}
}

func TestDecodeSnapshotKeepsRatesExact(t *testing.T) {
	raw := `{"products":[{"id":"p","name":"x","price":100,"stock":1,"discounts":[{"quantity":1,"rate":0.99999999999999999}]}],"coupons":[]}`
	snap, err := DecodeSnapshot(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	c, err := FromSnapshot(snap, nil)
	if err != nil {
		t.Fatalf("FromSnapshot() error = %v", err)
	}
	p, err := c.ProductByID("p")
	if err != nil {
		t.Fatalf("ProductByID() error = %v", err)
	}
	if want := decimal.RequireFromString("0.99999999999999999"); !p.Discounts[0].Rate.Equal(want) {
		t.Fatalf("expected rate %s, got %s", want, p.Discounts[0].Rate)
	}
}

func TestFromSnapshotRejectsAmountsOutsideInt64(t *testing.T) {
	for _, value := range []string{"1e19", "9.3e18", "1e300", "-1e19"} {
		value := value
		t.Run(value, func(t *testing.T) {
			snap := Snapshot{Coupons: []CouponDTO{{Code: "BIG", DiscountType: "amount", DiscountValue: decimal.RequireFromString(value)}}}
			_, err := FromSnapshot(snap, nil)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeInvalidCoupon {
				t.Fatalf("expected invalid coupon, got %v", err)
			}
			if typed.Message() != "discount amount out of range" {
				t.Fatalf("unexpected message %q", typed.Message())
			}
		})
	}
}

func TestReadSnapshotFileMissing(t *testing.T) {
	if _, err := ReadSnapshotFile("testdata/does-not-exist.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
