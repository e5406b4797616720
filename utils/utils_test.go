package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestAppErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NewNotFound("x"), http.StatusNotFound},
		{NewInvalidRequest("x"), http.StatusBadRequest},
		{NewForbidden("x"), http.StatusForbidden},
		{NewUnauthorized("x"), http.StatusUnauthorized},
		{NewConflict("x"), http.StatusConflict},
		{NewExpired("x"), http.StatusGone},
		{NewStorageError("x", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), tt.err.Error())
	}

	wrapped := fmt.Errorf("booking transaction failed: %w", NewConflict("slot has already been booked"))
	assert.True(t, IsKind(wrapped, KindConflict))
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret")

	tok, err := m.GenerateToken("u-1", PurposeSession, time.Hour)
	require.NoError(t, err)

	claims, err := m.ParseToken(tok, PurposeSession)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 2*time.Second)
}

func TestJWTRejectsWrongPurposeAndSecret(t *testing.T) {
	m := NewJWTManager("secret")
	tok, err := m.GenerateToken("u-1", PurposeVerifyEmail, time.Hour)
	require.NoError(t, err)

	_, err = m.ParseToken(tok, PurposeResetPassword)
	assert.True(t, IsKind(err, KindUnauthorized))

	_, err = NewJWTManager("other").ParseToken(tok, PurposeVerifyEmail)
	assert.True(t, IsKind(err, KindUnauthorized))

	_, err = m.ParseToken("not-a-token", PurposeVerifyEmail)
	assert.True(t, IsKind(err, KindUnauthorized))
}

func TestJWTExpiredIsDistinguishable(t *testing.T) {
	m := NewJWTManager("secret")
	tok, err := m.GenerateToken("u-1", PurposeResetPassword, -time.Minute)
	require.NoError(t, err)

	_, err = m.ParseToken(tok, PurposeResetPassword)
	assert.True(t, IsKind(err, KindExpired))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2030-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDay("2030-03-04T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC), d)

	for _, raw := range []string{"", "  ", "04/03/2030", "2030-13-01"} {
		_, err := ParseDay(raw)
		assert.True(t, IsKind(err, KindInvalidRequest), raw)
	}
}

func TestTodayUsesLocation(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)
	now := time.Date(2030, 1, 1, 22, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), Today(now, time.UTC))
	assert.Equal(t, time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC), Today(now, nairobi))
	assert.Equal(t, Today(now, time.UTC), Today(now, nil))
}

func TestNormalizeTime(t *testing.T) {
	assert.Equal(t, "09:00", NormalizeTime("9:00"))
	assert.Equal(t, "09:00", NormalizeTime(" 9:00 "))
	assert.Equal(t, "10:30", NormalizeTime("10:30"))
	assert.Equal(t, "00000", NormalizeTime(""))

	assert.True(t, ValidClockTime("23:59"))
	assert.False(t, ValidClockTime("24:00"))
	assert.False(t, ValidClockTime("9:00"))
	assert.False(t, ValidClockTime("ab:cd"))
}

func TestSlotLockExcludesConcurrentHolder(t *testing.T) {
	_, client := newMiniRedis(t)
	locker := NewRedisSlotLocker(client, time.Second)
	key := SlotLockKey("d-1", time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC), "09:00", "10:00")
	assert.Equal(t, "lock:slot:d-1:2030-01-02:09:00:10:00", key)

	err := locker.WithSlotLock(context.Background(), key, func(ctx context.Context) error {
		inner := locker.WithSlotLock(ctx, key, func(context.Context) error { return nil })
		assert.ErrorIs(t, inner, ErrLockNotAcquired)
		return nil
	})
	require.NoError(t, err)

	// Released after fn returns.
	called := false
	require.NoError(t, locker.WithSlotLock(context.Background(), key, func(context.Context) error {
		called = true
		return nil
	}))
	assert.True(t, called)
}

func TestSlotLockReleaseKeepsForeignLock(t *testing.T) {
	mr, client := newMiniRedis(t)
	locker := NewRedisSlotLocker(client, time.Second)
	key := "lock:slot:test"

	err := locker.WithSlotLock(context.Background(), key, func(context.Context) error {
		// Simulate expiry and takeover by another holder.
		mr.Del(key)
		require.NoError(t, mr.Set(key, "someone-else"))
		return nil
	})
	require.NoError(t, err)

	v, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", v)
}

func TestSlotLockPropagatesFnError(t *testing.T) {
	_, client := newMiniRedis(t)
	locker := NewRedisSlotLocker(client, 0)
	boom := errors.New("boom")

	err := locker.WithSlotLock(context.Background(), "k", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestSlotLockFallsBackWhenRedisIsDown(t *testing.T) {
	mr, client := newMiniRedis(t)
	locker := NewRedisSlotLocker(client, time.Second)
	mr.Close()

	ran := false
	err := locker.WithSlotLock(context.Background(), "k", func(context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	boom := errors.New("boom")
	err = locker.WithSlotLock(context.Background(), "k", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestRevocationStore(t *testing.T) {
	mr, client := newMiniRedis(t)
	store := NewRedisRevocationStore(client)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "tok", time.Now().Add(time.Minute)))
	revoked, err = store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists(revokedTokenPrefix+HashToken("tok")))

	// The entry disappears once the token would have expired on its own.
	mr.FastForward(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	// Already-expired tokens are not stored.
	require.NoError(t, store.Revoke(ctx, "old", time.Now().Add(-time.Second)))
	assert.False(t, mr.Exists(revokedTokenPrefix+HashToken("old")))
}

func TestRevocationStoreClaimIsExclusive(t *testing.T) {
	mr, client := newMiniRedis(t)
	store := NewRedisRevocationStore(client)
	ctx := context.Background()
	exp := time.Now().Add(time.Minute)

	claimed, err := store.Claim(ctx, "reset", exp)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = store.Claim(ctx, "reset", exp)
	require.NoError(t, err)
	assert.False(t, claimed)

	revoked, err := store.IsRevoked(ctx, "reset")
	require.NoError(t, err)
	assert.True(t, revoked)

	// A token revoked by logout cannot be claimed either.
	require.NoError(t, store.Revoke(ctx, "session", exp))
	claimed, err = store.Claim(ctx, "session", exp)
	require.NoError(t, err)
	assert.False(t, claimed)

	mr.Close()
	_, err = store.Claim(ctx, "other", exp)
	assert.Error(t, err)
}

func TestBookingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveBooking(nil)
	m.ObserveBooking(NewConflict("slot has already been booked"))
	m.ObserveBooking(fmt.Errorf("wrapped: %w", NewConflict("lost")))
	m.ObserveAvailabilityConflict()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues("booked")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues(string(KindConflict))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.availabilityRetry))

	var nilMetrics *BookingMetrics
	nilMetrics.ObserveBooking(nil)
	nilMetrics.ObserveAvailabilityConflict()
	var nilHTTP *HTTPMetrics
	nilHTTP.ObserveRequest("GET", "/", "200", 0.1)
}
