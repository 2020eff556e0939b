package security

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = base64.StdEncoding.EncodeToString([]byte("test-secret-key-for-hmac-signing"))

func TestIdentityTokenRoundTrip(t *testing.T) {
	identity := Identity{UserID: "user-1", FullName: "Ada Example", Role: "HR"}

	token, err := CreateIdentityToken(identity, testSecret, time.Hour)
	require.NoError(t, err)

	parsed, err := ParseIdentityToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, identity, parsed)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := CreateIdentityToken(Identity{UserID: "user-1", Role: "Employee"}, testSecret, time.Hour)
	require.NoError(t, err)

	otherSecret := base64.StdEncoding.EncodeToString([]byte("a-completely-different-secret-xx"))
	_, err = ParseIdentityToken(token, otherSecret)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := CreateIdentityToken(Identity{UserID: "user-1", Role: "Employee"}, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseIdentityToken(token, testSecret)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseIdentityToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestParseRejectsMissingSubject(t *testing.T) {
	token, err := CreateIdentityToken(Identity{FullName: "No Subject", Role: "Employee"}, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseIdentityToken(token, testSecret)
	assert.Error(t, err)
}
