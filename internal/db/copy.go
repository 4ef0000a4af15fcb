package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

// ChannelSource implements pgx.CopyFromSource by reading BillingLines from a channel.
// This provides natural backpressure between the line producer and COPY writer.
type ChannelSource struct {
	ch      <-chan *model.BillingLine
	current *model.BillingLine
	err     error
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource(ch <-chan *model.BillingLine) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Next advances to the next line. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	line, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = line
	return true
}

// Values returns the current line's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err returns any error encountered during iteration.
func (s *ChannelSource) Err() error {
	return s.err
}

// Compile-time check that ChannelSource satisfies the interface.
var _ pgx.CopyFromSource = (*ChannelSource)(nil)

// Copier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Copier interface {
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
}

// CopyBillingLines COPY-loads every line received on ch into chart.billing_lines.
// The caller owns ch and must close it when done producing.
func CopyBillingLines(ctx context.Context, c Copier, ch <-chan *model.BillingLine) (int64, error) {
	return c.CopyFrom(ctx,
		pgx.Identifier{"chart", "billing_lines"},
		model.BillingLineColumns(),
		NewChannelSource(ch),
	)
}
