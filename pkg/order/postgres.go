package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/megasoby/shop-agent/pkg/models"
)

// claim-reason code group in the common code table
const claimReasonGroup = "OR07"

// PostgresStore reads order-line snapshots from the orders database.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPostgresStore connects a pgx pool to the given DSN.
func NewPostgresStore(ctx context.Context, dsn string, log zerolog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create orders pool: %w", err)
	}
	return &PostgresStore{
		pool: pool,
		log:  log.With().Str("component", "order").Logger(),
	}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Lookup fetches one order line and resolves its code fields to labels.
// The claim-reason label needs a second query; on failure it falls back to
// the raw code.
func (s *PostgresStore) Lookup(ctx context.Context, orderNo string, lineSeq int) (*models.OrderSnapshot, error) {
	const query = `
SELECT ord_no, ord_item_seq, ord_item_stat_cd,
       item_id, item_nm, uitem_id, uitem_nm,
       ord_qty, cncl_qty, ret_qty,
       ord_amt, dc_amt, rlord_amt,
       shpp_mthd_cd, shpp_rsvt_dt, shpp_dirc_expc_dt,
       clm_rsn_cd, clm_rsn_cntt,
       to_char(ord_rcp_dts, 'YYYY-MM-DD HH24:MI:SS'),
       to_char(ord_item_stat_chng_dts, 'YYYY-MM-DD HH24:MI:SS')
FROM ord_item
WHERE ord_no = $1 AND ord_item_seq = $2`

	var (
		snap models.OrderSnapshot

		itemID, itemName, unitItemID, unitName    *string
		shippingCode, shipReserveAt, shipExpectAt *string
		claimCode, claimDetail                    *string
		orderedAt, statusChangedAt                *string
	)

	err := s.pool.QueryRow(ctx, query, orderNo, lineSeq).Scan(
		&snap.OrderNo, &snap.LineSeq, &snap.StatusCode,
		&itemID, &itemName, &unitItemID, &unitName,
		&snap.OrderQty, &snap.CancelQty, &snap.ReturnQty,
		&snap.OrderAmt, &snap.DiscAmt, &snap.PaidAmt,
		&shippingCode, &shipReserveAt, &shipExpectAt,
		&claimCode, &claimDetail,
		&orderedAt, &statusChangedAt,
	)
	if err != nil {
		s.log.Warn().Str("order_no", orderNo).Int("line_seq", lineSeq).Err(err).Msg("order lookup failed")
		return nil, fmt.Errorf("order lookup failed: %w", err)
	}

	snap.StatusLabel = StatusLabel(snap.StatusCode)
	snap.ItemID = deref(itemID)
	snap.ItemName = deref(itemName)
	snap.UnitItemID = deref(unitItemID)
	snap.UnitName = deref(unitName)
	snap.ShipReserveAt = deref(shipReserveAt)
	snap.ShipExpectAt = deref(shipExpectAt)
	snap.ClaimDetail = deref(claimDetail)
	snap.OrderedAt = deref(orderedAt)
	snap.StatusChangedAt = deref(statusChangedAt)

	if shippingCode != nil {
		snap.ShippingCode = *shippingCode
		snap.ShippingLabel = ShippingLabel(*shippingCode)
	}
	if claimCode != nil && *claimCode != "" {
		snap.ClaimReasonCode = *claimCode
		snap.ClaimReasonLabel = s.claimReasonLabel(ctx, *claimCode)
	}

	return &snap, nil
}

// claimReasonLabel resolves the claim-reason code via the common code
// table. The raw code is good enough when the lookup fails.
func (s *PostgresStore) claimReasonLabel(ctx context.Context, code string) string {
	const query = `SELECT comm_cd_nm FROM comm_cd_dtlc WHERE comm_cd_grp_no = $1 AND comm_cd_no = $2`

	var label string
	if err := s.pool.QueryRow(ctx, query, claimReasonGroup, code).Scan(&label); err != nil {
		s.log.Debug().Str("code", code).Err(err).Msg("claim reason lookup failed")
		return code
	}
	return label
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
