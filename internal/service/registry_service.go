package service

import (
	"context"
	"time"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// usedQRCacheTTL only has to outlive the QR expiration window.
const usedQRCacheTTL = 24 * time.Hour

// QRRegistry answers whether a QR payload was already consumed.
// The database primary key is the guard; the cache only short-circuits replays.
type QRRegistry struct {
	repo  ports.UsedQRCodeRepository
	cache ports.UsedQRCodeCache
	log   zerolog.Logger
}

// NewQRRegistry creates a registry. cache may be nil.
func NewQRRegistry(repo ports.UsedQRCodeRepository, cache ports.UsedQRCodeCache, log zerolog.Logger) *QRRegistry {
	return &QRRegistry{repo: repo, cache: cache, log: log}
}

// IsUsed checks the cache first and falls back to the database.
func (r *QRRegistry) IsUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	if r.cache != nil {
		used, err := r.cache.IsUsed(ctx, id)
		if err != nil {
			r.log.Warn().Err(err).Str("qr_code_id", id.String()).Msg("used qr cache unavailable, falling back to database")
		} else if used {
			return true, nil
		}
	}
	return r.repo.Exists(ctx, nil, id)
}

// MarkUsed records the payload inside tx. A second insert fails with AlreadyUsed.
func (r *QRRegistry) MarkUsed(ctx context.Context, tx pgx.Tx, info domain.ScanInfo, storeID uuid.UUID) error {
	used := domain.NewUsedQRCode(info, storeID)
	return r.repo.Create(ctx, tx, &used)
}

// Remember warms the cache once the marker is committed.
func (r *QRRegistry) Remember(ctx context.Context, id uuid.UUID) {
	if r.cache == nil {
		return
	}
	if err := r.cache.MarkUsed(ctx, id, usedQRCacheTTL); err != nil {
		r.log.Warn().Err(err).Str("qr_code_id", id.String()).Msg("failed to cache used qr code")
	}
}
