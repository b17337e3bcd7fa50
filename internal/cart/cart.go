// Package cart holds the shopping cart as a pure value with reducer-style
// transitions. Nothing in here performs I/O; callers decide where the cart
// lives between events (the web handlers keep it in the cookie session).
package cart

import (
	"github.com/shopspring/decimal"
)

// Line is one distinct menu item and its quantity. A cart never holds two
// lines for the same ItemID, and Quantity is always >= 1.
type Line struct {
	ItemID       string
	Name         string
	UnitPrice    decimal.Decimal
	Quantity     int
	RestaurantID string
}

// Cart is an immutable snapshot of the selected lines. Transitions go
// through Reduce and return a fresh value; the zero Cart is empty and valid.
type Cart struct {
	Lines []Line
}

// Action is one of the closed set of cart transitions.
type Action interface {
	isAction()
}

// AddItem merges by ItemID: an existing line gains the incoming quantity,
// otherwise the line is appended. A non-positive quantity defaults to 1.
type AddItem struct {
	Line Line
}

// SetQuantity replaces a line's quantity. Zero or negative removes the line.
type SetQuantity struct {
	ItemID   string
	Quantity int
}

// RemoveItem deletes the line if present; unknown IDs are a no-op.
type RemoveItem struct {
	ItemID string
}

// Clear empties the cart. Issued once, after a confirmed order.
type Clear struct{}

func (AddItem) isAction()     {}
func (SetQuantity) isAction() {}
func (RemoveItem) isAction()  {}
func (Clear) isAction()       {}

// Reduce applies a single transition and returns the resulting cart. The
// input cart is never mutated, so callers may keep old snapshots around.
func Reduce(c Cart, a Action) Cart {
	switch act := a.(type) {
	case AddItem:
		incoming := act.Line
		if incoming.Quantity < 1 {
			incoming.Quantity = 1
		}
		lines := make([]Line, len(c.Lines))
		copy(lines, c.Lines)
		for i := range lines {
			if lines[i].ItemID == incoming.ItemID {
				lines[i].Quantity += incoming.Quantity
				return Cart{Lines: lines}
			}
		}
		return Cart{Lines: append(lines, incoming)}

	case SetQuantity:
		if act.Quantity <= 0 {
			return Reduce(c, RemoveItem{ItemID: act.ItemID})
		}
		lines := make([]Line, len(c.Lines))
		copy(lines, c.Lines)
		for i := range lines {
			if lines[i].ItemID == act.ItemID {
				lines[i].Quantity = act.Quantity
			}
		}
		return Cart{Lines: lines}

	case RemoveItem:
		var lines []Line
		for _, l := range c.Lines {
			if l.ItemID != act.ItemID {
				lines = append(lines, l)
			}
		}
		return Cart{Lines: lines}

	case Clear:
		return Cart{}
	}
	return c
}

// Total is the literal sum of UnitPrice x Quantity over all lines,
// recomputed on every call.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Count is the number of units across all lines, for the nav badge.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// RestaurantID reports the restaurant the cart's lines belong to. The menu
// pages only ever add lines from one restaurant at a time, so the first
// line's owner is authoritative.
func (c Cart) RestaurantID() string {
	if len(c.Lines) == 0 {
		return ""
	}
	return c.Lines[0].RestaurantID
}
