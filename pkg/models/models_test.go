package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConversationTurn(t *testing.T) {
	turn := NewConversationTurn("alice", "question", "answer", 5, 120)

	assert.NotEmpty(t, turn.ID)
	assert.Equal(t, "alice", turn.UserID)
	assert.Equal(t, "question", turn.Question)
	assert.Equal(t, "answer", turn.Answer)
	assert.Equal(t, 5, turn.RetrievedCount)
	assert.Equal(t, int64(120), turn.ElapsedMillis)
	assert.False(t, turn.CreatedAt.IsZero())

	other := NewConversationTurn("alice", "question", "answer", 5, 120)
	assert.NotEqual(t, turn.ID, other.ID)
}

func TestNewConversationTurnDefaultsUser(t *testing.T) {
	turn := NewConversationTurn("", "question", "answer", 0, 0)
	assert.Equal(t, DefaultUserID, turn.UserID)
}

func TestOrderSnapshotSummary(t *testing.T) {
	snap := OrderSnapshot{
		OrderNo:       "ORD-1001",
		LineSeq:       2,
		StatusCode:    "210",
		StatusLabel:   "Cancel requested",
		ItemName:      "UltraBook 14",
		ShippingLabel: "Courier",
		OrderQty:      2,
		CancelQty:     1,
		OrderAmt:      2580000,
		DiscAmt:       100000,
		PaidAmt:       2480000,

		ClaimReasonLabel: "Change of mind",
		ClaimDetail:      "Ordered the wrong size",
	}

	got := snap.Summary()

	want := strings.Join([]string{
		"=== Order Info ===",
		"- Order no: ORD-1001 (line 2)",
		"- Item: UltraBook 14",
		"- Status: Cancel requested (210)",
		"- Shipping: Courier",
		"- Ordered qty: 2",
		"- Order amount: 2580000",
		"- Discount: 100000",
		"- Paid amount: 2480000",
		"- Canceled qty: 1",
		"- Claim reason: Change of mind",
		"- Claim detail: Ordered the wrong size",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestOrderSnapshotSummaryOmitsUnsetFields(t *testing.T) {
	snap := OrderSnapshot{OrderNo: "ORD-2", LineSeq: 1, StatusCode: "110"}

	got := snap.Summary()

	assert.Contains(t, got, "- Item: N/A\n")
	assert.Contains(t, got, "- Status: N/A (110)\n")
	assert.Contains(t, got, "- Shipping: N/A\n")
	assert.NotContains(t, got, "Canceled qty")
	assert.NotContains(t, got, "Returned qty")
	assert.NotContains(t, got, "Claim")
}
