package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelRoundTrip(t *testing.T) {
	assert.Equal(t, "notifications:user:42", Channel(42))

	id, err := RecipientFromChannel(Channel(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestRecipientFromChannel_Rejects(t *testing.T) {
	_, err := RecipientFromChannel("other:42")
	assert.Error(t, err)

	_, err = RecipientFromChannel("notifications:user:abc")
	assert.Error(t, err)
}

func TestConfigOptions(t *testing.T) {
	_, err := Config{}.Options()
	assert.Error(t, err)

	opts, err := Config{URL: "rediss://:fromurl@cache.example.com:6380/0", Password: "override"}.Options()
	require.NoError(t, err)
	assert.Equal(t, "cache.example.com:6380", opts.Addr)
	assert.Equal(t, "override", opts.Password)
	assert.NotNil(t, opts.TLSConfig)
}
