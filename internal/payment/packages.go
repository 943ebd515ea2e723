// Package payment integrates the hosted checkout provider. Checkout
// amounts are fixed server-side per package; the client only ever sends a
// package id.
package payment

import "errors"

// ErrUnknownPackage is returned when a checkout is requested for a
// package id that is not in the catalog.
var ErrUnknownPackage = errors.New("unknown payment package")

// Package is one purchasable item: a membership, an event ticket or a
// donation tier.
type Package struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// Catalog is the fixed list of purchasable packages. Order matters for
// the public listing.
var Catalog = []Package{
	{ID: "membership_annual", Name: "Annual Membership", AmountCents: 5000, Currency: "usd"},
	{ID: "membership_student", Name: "Student Membership", AmountCents: 2500, Currency: "usd"},
	{ID: "event_ticket", Name: "Debate Night Ticket", AmountCents: 1500, Currency: "usd"},
	{ID: "donation_small", Name: "Supporter Donation", AmountCents: 1000, Currency: "usd"},
	{ID: "donation_large", Name: "Patron Donation", AmountCents: 10000, Currency: "usd"},
}

// Find looks up a package by id.
func Find(id string) (Package, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}
