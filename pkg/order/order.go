// Package order looks up order-line snapshots for conversation enrichment
// and resolves status codes to human-readable labels.
package order

import (
	"context"

	"github.com/megasoby/shop-agent/pkg/models"
)

// Store fetches one order line by order number and line sequence.
// Implementations return an error both for lookup failures and for
// unknown orders; callers treat any error as "no snapshot available".
type Store interface {
	Lookup(ctx context.Context, orderNo string, lineSeq int) (*models.OrderSnapshot, error)
}

// Order-line status codes. 1xx order, 2xx return, 3xx exchange.
var statusLabels = map[string]string{
	"110": "awaiting payment",
	"120": "order complete",
	"130": "shipping requested",
	"140": "picking complete",
	"145": "inbound delayed",
	"146": "out of stock",
	"150": "packing complete",
	"160": "shipped",
	"170": "delivered",
	"180": "order canceled",

	"210": "return requested",
	"220": "return accepted",
	"230": "pickup requested",
	"235": "pickup confirmed",
	"240": "pickup collected",
	"246": "awaiting inspection",
	"248": "inspection complete",
	"250": "restocked",
	"260": "awaiting refund",
	"270": "refund complete",
	"299": "return withdrawn",

	"310": "exchange requested",
	"320": "exchange accepted",
	"330": "pickup requested",
	"335": "pickup confirmed",
	"336": "awaiting inspection",
	"338": "inspection complete",
	"340": "restocked",
	"350": "reshipment requested",
	"360": "picking complete",
	"370": "packing complete",
	"380": "shipped",
	"390": "delivered",
	"399": "exchange withdrawn",
}

var shippingLabels = map[string]string{
	"10": "own fleet",
	"20": "parcel carrier",
	"30": "store pickup",
	"40": "registered mail",
	"50": "no shipping",
	"60": "not dispatched",
	"70": "same-day courier",
	"80": "international",
	"90": "special handling",
}

// StatusLabel resolves an order-line status code; unknown codes come back
// unchanged.
func StatusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

// ShippingLabel resolves a shipping-method code; unknown codes come back
// unchanged.
func ShippingLabel(code string) string {
	if label, ok := shippingLabels[code]; ok {
		return label
	}
	return code
}

// StatusGuidance returns operator guidance for the given status code, used
// to steer the generated answer when a snapshot is present. Empty for
// unknown codes.
func StatusGuidance(code string) string {
	switch code {
	case "110":
		return "Awaiting payment. The order proceeds after payment completes; cancellation is available."
	case "120":
		return "Order complete. Cancellation is available until the item ships."
	case "130", "140", "145", "146", "150":
		return "Preparing shipment. A cancellation request is still possible before dispatch."
	case "160":
		return "Shipped. Cancellation is no longer possible; advise a return after delivery."
	case "170":
		return "Delivered. Return or exchange can be requested within 7 days of delivery."
	case "180":
		return "The order has been canceled."
	case "210", "220":
		return "Return requested/accepted. Pickup will be scheduled."
	case "230", "235", "240":
		return "Return pickup is in progress."
	case "246", "248", "250":
		return "Returned item is being received and inspected."
	case "260":
		return "Awaiting refund. The refund will be processed shortly."
	case "270":
		return "Refund complete."
	case "299":
		return "The return has been withdrawn."
	case "310", "320":
		return "Exchange requested/accepted. Pickup will be scheduled."
	case "330", "335", "340":
		return "Exchange pickup and restocking are in progress."
	case "350", "360", "370", "380":
		return "The replacement item is being dispatched."
	case "390":
		return "The replacement item has been delivered."
	case "399":
		return "The exchange has been withdrawn."
	default:
		return ""
	}
}
