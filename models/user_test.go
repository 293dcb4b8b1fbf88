package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// An empty mobile must not serialize at all: the unique partial index on
// mobile filters on string type, so a stored "" would make every
// mobile-less federated account collide with the next one.
func TestUser_EmptyMobileOmittedFromDocument(t *testing.T) {
	raw, err := bson.Marshal(User{FullName: "G User", Email: "g@x.com"})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	_, present := doc["mobile"]
	assert.False(t, present)
	assert.Equal(t, "g@x.com", doc["email"])
}

func TestUser_MobileSerializedWhenSet(t *testing.T) {
	raw, err := bson.Marshal(User{Email: "a@x.com", Mobile: "9876543210"})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	assert.Equal(t, "9876543210", doc["mobile"])
}

// The stored password hash and reset-OTP state never leave the API
func TestUser_SensitiveFieldsNeverMarshalToJSON(t *testing.T) {
	user := User{Email: "a@x.com", Password: "$2a$10$hash", ResetOtp: "1234"}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	body := string(raw)
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "resetOtp")
	assert.NotContains(t, body, "$2a$10$hash")
	assert.NotContains(t, body, "1234")
}
