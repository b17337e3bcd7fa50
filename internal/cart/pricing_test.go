package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"dine-in", ModeDineIn, false},
		{"Dine-In", ModeDineIn, false},
		{"TAKEAWAY", ModeTakeaway, false},
		{" delivery ", ModeDelivery, false},
		{"drive-thru", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseMode(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestQuote_DineInHasNoDeliveryFee(t *testing.T) {
	c := Reduce(Cart{}, AddItem{Line: line("A", 120, 1)})
	c = Reduce(c, AddItem{Line: line("B", 80, 2)})

	draft := Quote(c, ModeDineIn)

	if !draft.Subtotal.Equal(decimal.NewFromInt(280)) {
		t.Fatalf("subtotal = %s, want 280", draft.Subtotal)
	}
	if !draft.DeliveryFee.IsZero() {
		t.Fatalf("dine-in should carry no delivery fee, got %s", draft.DeliveryFee)
	}
	wantTax := decimal.NewFromFloat(22.4)
	if !draft.Tax.Equal(wantTax) {
		t.Fatalf("tax = %s, want %s", draft.Tax, wantTax)
	}
	if !draft.Total.Equal(decimal.NewFromFloat(302.4)) {
		t.Fatalf("total = %s, want 302.4", draft.Total)
	}
}

func TestQuote_DeliveryAddsFlatFee(t *testing.T) {
	c := Reduce(Cart{}, AddItem{Line: line("A", 100, 1)})

	draft := Quote(c, ModeDelivery)

	if !draft.DeliveryFee.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("delivery fee = %s, want 30", draft.DeliveryFee)
	}
	// 100 + 30 + 8 tax
	if !draft.Total.Equal(decimal.NewFromInt(138)) {
		t.Fatalf("total = %s, want 138", draft.Total)
	}
}

func TestQuote_EmptyCartIsAllZero(t *testing.T) {
	draft := Quote(Cart{}, ModeDelivery)
	if !draft.Subtotal.IsZero() || !draft.Tax.IsZero() {
		t.Fatalf("empty cart should price to zero, got %+v", draft)
	}
	// The flat fee still applies by formula, but an empty cart is rejected
	// before checkout ever prices it.
	if !draft.DeliveryFee.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("delivery fee = %s, want 30", draft.DeliveryFee)
	}
}

func TestQuote_RecomputedFromCurrentLines(t *testing.T) {
	c := Reduce(Cart{}, AddItem{Line: line("A", 100, 2)})
	before := Quote(c, ModeDineIn)

	c = Reduce(c, SetQuantity{ItemID: "A", Quantity: 1})
	after := Quote(c, ModeDineIn)

	if before.Subtotal.Equal(after.Subtotal) {
		t.Fatalf("quote did not track the cart: %s vs %s", before.Subtotal, after.Subtotal)
	}
	if !after.Subtotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("subtotal = %s, want 100", after.Subtotal)
	}
}
