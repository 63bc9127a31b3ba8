package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:test-token"

// signInitData produces a valid initData string the way the Telegram client
// does: sorted k=v pairs, newline-joined, keyed with HMAC("WebAppData", token).
func signInitData(t *testing.T, values url.Values) string {
	t.Helper()

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(testBotToken))
	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func validValues(now time.Time) url.Values {
	return url.Values{
		"auth_date": {strconv.FormatInt(now.Unix(), 10)},
		"query_id":  {"AAF"},
		"user":      {`{"id":42,"first_name":"Ann","username":"ann_t"}`},
	}
}

func TestVerifyAcceptsSignedPayload(t *testing.T) {
	now := time.Now()
	initData := signInitData(t, validValues(now))

	user, err := Verify(initData, testBotToken, DefaultLifetime, now)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "Ann", user.FirstName)
	assert.Equal(t, "ann_t", user.Username)
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	now := time.Now()
	values := validValues(now)
	initData := signInitData(t, values)
	tampered := strings.Replace(initData, "Ann", "Eve", 1)

	_, err := Verify(tampered, testBotToken, DefaultLifetime, now)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyRejectsWrongToken(t *testing.T) {
	now := time.Now()
	initData := signInitData(t, validValues(now))

	_, err := Verify(initData, "other-token", DefaultLifetime, now)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyRejectsExpiredPayload(t *testing.T) {
	now := time.Now()
	stale := validValues(now.Add(-2 * time.Hour))
	initData := signInitData(t, stale)

	_, err := Verify(initData, testBotToken, time.Hour, now)
	assert.ErrorIs(t, err, ErrExpiredInitData)
}

func TestVerifyRejectsMissingHash(t *testing.T) {
	_, err := Verify("auth_date=1", testBotToken, DefaultLifetime, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyRejectsBadUserJSON(t *testing.T) {
	now := time.Now()
	values := validValues(now)
	values.Set("user", "not-json")
	initData := signInitData(t, values)

	_, err := Verify(initData, testBotToken, DefaultLifetime, now)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}
