package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devicerelay.xyz/device-relay-service/pkg/common"
	"devicerelay.xyz/device-relay-service/pkg/db"
	_ "devicerelay.xyz/device-relay-service/pkg/testing"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "x1_contacts", Key("x1", "contacts"))
}

func TestGormStorePutGet(t *testing.T) {
	common.SetTestLoggerNop()

	s := NewGormStore(db.GetInstance(db.UseMemorySqliteDialector()))
	ctx := context.Background()
	deviceID := uuid.NewString()

	err := s.Put(ctx, deviceID, "sms", []byte(`[{"from":"111"}]`))
	require.NoError(t, err)

	blob, err := s.Get(ctx, deviceID, "sms")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"from":"111"}]`, string(blob))
}

func TestGormStoreOverwrite(t *testing.T) {
	common.SetTestLoggerNop()

	s := NewGormStore(db.GetInstance(db.UseMemorySqliteDialector()))
	ctx := context.Background()
	deviceID := uuid.NewString()

	require.NoError(t, s.Put(ctx, deviceID, "location", []byte(`{"lat":1}`)))
	require.NoError(t, s.Put(ctx, deviceID, "location", []byte(`{"lat":2}`)))

	blob, err := s.Get(ctx, deviceID, "location")
	require.NoError(t, err)
	assert.JSONEq(t, `{"lat":2}`, string(blob))
}

func TestGormStoreGetMissing(t *testing.T) {
	common.SetTestLoggerNop()

	s := NewGormStore(db.GetInstance(db.UseMemorySqliteDialector()))

	_, err := s.Get(context.Background(), uuid.NewString(), "contacts")
	assert.ErrorIs(t, err, ErrNotFound)
}
