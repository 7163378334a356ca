package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports/mocks"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testScanInfo() domain.ScanInfo {
	return domain.ScanInfo{
		QRPayload: domain.QRPayload{ID: uuid.New(), Tot: 100, Iat: time.Now(), Key: uuid.New(), Store: true},
		Signature: "c2ln",
	}
}

func TestQRRegistry_WithoutCache(t *testing.T) {
	store := newMemStore(time.Now)
	registry := NewQRRegistry(store.usedQRRepo(), nil, newTestLogger())
	ctx := context.Background()
	info := testScanInfo()

	used, err := registry.IsUsed(ctx, info.ID)
	require.NoError(t, err)
	assert.False(t, used)

	require.NoError(t, registry.MarkUsed(ctx, nil, info, uuid.New()))
	registry.Remember(ctx, info.ID)

	used, err = registry.IsUsed(ctx, info.ID)
	require.NoError(t, err)
	assert.True(t, used)

	err = registry.MarkUsed(ctx, nil, info, uuid.New())
	assertCode(t, err, apperror.CodeAlreadyUsed)
}

func TestQRRegistry_CacheHitSkipsDatabase(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockUsedQRCodeCache(ctrl)
	store := newMemStore(time.Now)
	store.failOn("usedqr.exists", errors.New("must not be called"))
	registry := NewQRRegistry(store.usedQRRepo(), cache, newTestLogger())
	id := uuid.New()

	cache.EXPECT().IsUsed(gomock.Any(), id).Return(true, nil)

	used, err := registry.IsUsed(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, used)
}

func TestQRRegistry_CacheErrorFallsBackToDatabase(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockUsedQRCodeCache(ctrl)
	store := newMemStore(time.Now)
	registry := NewQRRegistry(store.usedQRRepo(), cache, newTestLogger())
	info := testScanInfo()
	require.NoError(t, registry.MarkUsed(context.Background(), nil, info, uuid.New()))

	cache.EXPECT().IsUsed(gomock.Any(), info.ID).Return(false, errors.New("redis down"))

	used, err := registry.IsUsed(context.Background(), info.ID)
	require.NoError(t, err)
	assert.True(t, used)
}

func TestQRRegistry_CacheMissChecksDatabase(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockUsedQRCodeCache(ctrl)
	store := newMemStore(time.Now)
	registry := NewQRRegistry(store.usedQRRepo(), cache, newTestLogger())
	id := uuid.New()

	cache.EXPECT().IsUsed(gomock.Any(), id).Return(false, nil)

	used, err := registry.IsUsed(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, used)
}

func TestQRRegistry_RememberIgnoresCacheErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockUsedQRCodeCache(ctrl)
	registry := NewQRRegistry(newMemStore(time.Now).usedQRRepo(), cache, newTestLogger())
	id := uuid.New()

	cache.EXPECT().MarkUsed(gomock.Any(), id, usedQRCacheTTL).Return(errors.New("redis down"))

	assert.NotPanics(t, func() { registry.Remember(context.Background(), id) })
}
