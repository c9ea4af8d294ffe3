package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserSettings(t *testing.T) {
	t.Run("empty document yields defaults", func(t *testing.T) {
		s, err := ParseUserSettings(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultUserSettings(), s)
	})

	t.Run("missing keys keep their defaults", func(t *testing.T) {
		s, err := ParseUserSettings([]byte(`{"notifications":{"emailNotifications":false},"preferences":{"currency":"EUR"}}`))
		require.NoError(t, err)
		assert.False(t, s.Notifications.EmailNotifications)
		assert.True(t, s.Notifications.PushNotifications)
		assert.True(t, s.Notifications.ApplicationUpdates)
		assert.Equal(t, "EUR", s.Preferences.Currency)
		assert.Equal(t, "UTC", s.Preferences.Timezone)
		assert.Equal(t, "public", s.Privacy.ProfileVisibility)
	})

	t.Run("malformed document falls back to defaults", func(t *testing.T) {
		s, err := ParseUserSettings([]byte(`{"notifications":`))
		assert.Error(t, err)
		assert.Equal(t, DefaultUserSettings(), s)
	})
}

func TestSettingsUpdateApply(t *testing.T) {
	var update SettingsUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"privacy":{"showEmail":true}}`), &update))

	stored := DefaultUserSettings()
	stored.Notifications.PushNotifications = false

	got := update.Apply(stored)
	assert.True(t, got.Privacy.ShowEmail)
	assert.True(t, got.Privacy.AllowMessages, "omitted keys of a provided section take defaults")
	assert.False(t, got.Notifications.PushNotifications, "sections not provided are kept")
}

func TestUserPublic(t *testing.T) {
	phone := "+1 555 0100"
	u := User{ID: 1, Email: "a@example.test", Phone: &phone, Settings: DefaultUserSettings()}

	public := u.Public()
	assert.Empty(t, public.Email)
	assert.Nil(t, public.Phone)

	u.Settings.Privacy.ShowEmail = true
	assert.Equal(t, "a@example.test", u.Public().Email)
}
