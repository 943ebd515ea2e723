package payment

import (
	"testing"

	"github.com/debateclub/debate-club-api/internal/model"
)

func TestFindKnownPackage(t *testing.T) {
	p, ok := Find("membership_annual")
	if !ok {
		t.Fatal("membership_annual not found")
	}
	if p.AmountCents != 5000 || p.Currency != "usd" {
		t.Fatalf("unexpected package %+v", p)
	}
}

func TestFindUnknownPackage(t *testing.T) {
	if _, ok := Find("free_lunch"); ok {
		t.Fatal("unknown package id resolved")
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Catalog {
		if seen[p.ID] {
			t.Fatalf("duplicate package id %q", p.ID)
		}
		seen[p.ID] = true
		if p.AmountCents <= 0 {
			t.Fatalf("package %q has non-positive amount", p.ID)
		}
	}
}

func TestTransactionStatus(t *testing.T) {
	cases := []struct {
		name string
		cs   CheckoutSession
		want string
	}{
		{"paid", CheckoutSession{Status: "complete", PaymentStatus: "paid"}, model.PaymentPaid},
		{"expired", CheckoutSession{Status: "expired", PaymentStatus: "unpaid"}, model.PaymentExpired},
		{"open", CheckoutSession{Status: "open", PaymentStatus: "unpaid"}, model.PaymentPending},
	}
	for _, c := range cases {
		if got := TransactionStatus(&c.cs); got != c.want {
			t.Errorf("%s: TransactionStatus = %q, want %q", c.name, got, c.want)
		}
	}
}
