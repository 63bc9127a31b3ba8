// Package telegram verifies Mini App launches and talks to the Bot API.
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nvoropaev/bracketeer/internal/tournament"
)

var (
	// ErrInvalidInitData means the payload failed signature verification.
	ErrInvalidInitData = errors.New("invalid init data")
	// ErrExpiredInitData means the payload is older than the allowed lifetime.
	ErrExpiredInitData = errors.New("init data expired")
)

// DefaultLifetime is how long a signed initData payload stays acceptable.
const DefaultLifetime = time.Hour

// Verify checks a Mini App initData string against the bot token and returns
// the launching user. The signature scheme is the documented WebAppData keyed
// hash: secret = HMAC_SHA256("WebAppData", botToken), expected =
// HMAC_SHA256(secret, sorted k=v pairs joined by newlines, hash excluded).
func Verify(initData, botToken string, lifetime time.Duration, now time.Time) (*tournament.User, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: not a query string", ErrInvalidInitData)
	}
	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, fmt.Errorf("%w: missing hash", ErrInvalidInitData)
	}

	pairs := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	checkString := strings.Join(pairs, "\n")

	secret := hmacSHA256([]byte("WebAppData"), []byte(botToken))
	expected := hex.EncodeToString(hmacSHA256(secret, []byte(checkString)))
	if !hmac.Equal([]byte(expected), []byte(gotHash)) {
		return nil, fmt.Errorf("%w: hash mismatch", ErrInvalidInitData)
	}

	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad auth_date", ErrInvalidInitData)
	}
	if now.Sub(time.Unix(authDate, 0)) > lifetime {
		return nil, ErrExpiredInitData
	}

	// The user field is JSON and is parsed explicitly; nothing here ever
	// evaluates client-supplied data.
	var user tournament.User
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil {
		return nil, fmt.Errorf("%w: bad user payload", ErrInvalidInitData)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user id missing", ErrInvalidInitData)
	}
	return &user, nil
}

func hmacSHA256(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}
