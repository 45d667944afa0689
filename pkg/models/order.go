package models

import (
	"fmt"
	"strings"
)

// OrderSnapshot is a denormalized, point-in-time read of one order line.
// Status and shipping codes carry their resolved human-readable labels.
type OrderSnapshot struct {
	OrderNo string `json:"order_no"`
	LineSeq int    `json:"line_seq"`

	StatusCode  string `json:"status_code"`
	StatusLabel string `json:"status_label"`

	ItemID     string `json:"item_id,omitempty"`
	ItemName   string `json:"item_name,omitempty"`
	UnitItemID string `json:"unit_item_id,omitempty"`
	UnitName   string `json:"unit_name,omitempty"`

	OrderQty  int   `json:"order_qty"`
	CancelQty int   `json:"cancel_qty"`
	ReturnQty int   `json:"return_qty"`
	OrderAmt  int64 `json:"order_amt"`
	DiscAmt   int64 `json:"disc_amt"`
	PaidAmt   int64 `json:"paid_amt"`

	ShippingCode  string `json:"shipping_code,omitempty"`
	ShippingLabel string `json:"shipping_label,omitempty"`
	ShipReserveAt string `json:"ship_reserve_at,omitempty"`
	ShipExpectAt  string `json:"ship_expect_at,omitempty"`

	ClaimReasonCode  string `json:"claim_reason_code,omitempty"`
	ClaimReasonLabel string `json:"claim_reason_label,omitempty"`
	ClaimDetail      string `json:"claim_detail,omitempty"`

	OrderedAt       string `json:"ordered_at,omitempty"`
	StatusChangedAt string `json:"status_changed_at,omitempty"`
}

// Summary renders the snapshot as the order prologue block used in RAG
// context assembly. Field order is fixed; cancel/return quantities and
// claim fields appear only when set.
func (o *OrderSnapshot) Summary() string {
	var b strings.Builder
	b.WriteString("=== Order Info ===\n")
	fmt.Fprintf(&b, "- Order no: %s (line %d)\n", o.OrderNo, o.LineSeq)
	fmt.Fprintf(&b, "- Item: %s\n", orDefault(o.ItemName, "N/A"))
	fmt.Fprintf(&b, "- Status: %s (%s)\n", orDefault(o.StatusLabel, "N/A"), o.StatusCode)
	fmt.Fprintf(&b, "- Shipping: %s\n", orDefault(o.ShippingLabel, "N/A"))
	fmt.Fprintf(&b, "- Ordered qty: %d\n", o.OrderQty)
	fmt.Fprintf(&b, "- Order amount: %d\n", o.OrderAmt)
	fmt.Fprintf(&b, "- Discount: %d\n", o.DiscAmt)
	fmt.Fprintf(&b, "- Paid amount: %d\n", o.PaidAmt)

	if o.CancelQty > 0 {
		fmt.Fprintf(&b, "- Canceled qty: %d\n", o.CancelQty)
	}
	if o.ReturnQty > 0 {
		fmt.Fprintf(&b, "- Returned qty: %d\n", o.ReturnQty)
	}
	if o.ClaimReasonLabel != "" {
		fmt.Fprintf(&b, "- Claim reason: %s\n", o.ClaimReasonLabel)
	}
	if o.ClaimDetail != "" {
		fmt.Fprintf(&b, "- Claim detail: %s\n", o.ClaimDetail)
	}
	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
