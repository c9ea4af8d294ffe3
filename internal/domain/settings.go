package domain

import "encoding/json"

// NotificationSettings controls which notification categories reach a user
type NotificationSettings struct {
	EmailNotifications bool `json:"emailNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	JobAlerts          bool `json:"jobAlerts"`
	ApplicationUpdates bool `json:"applicationUpdates"`
	InterviewReminders bool `json:"interviewReminders"`
	Newsletter         bool `json:"newsletter"`
}

type PrivacySettings struct {
	ProfileVisibility string `json:"profileVisibility" binding:"omitempty,oneof=public private connections"`
	ShowEmail         bool   `json:"showEmail"`
	ShowPhone         bool   `json:"showPhone"`
	AllowMessages     bool   `json:"allowMessages"`
	DataSharing       bool   `json:"dataSharing"`
}

type SalaryRange struct {
	Min int `json:"min" binding:"gte=0"`
	Max int `json:"max" binding:"gte=0,gtefield=Min"`
}

type PreferenceSettings struct {
	JobType     []string    `json:"jobType" binding:"omitempty,dive,oneof=remote onsite hybrid"`
	Industries  []string    `json:"industries" binding:"omitempty,dive,max=255"`
	SalaryRange SalaryRange `json:"salaryRange"`
	Location    *string     `json:"location" binding:"omitempty,max=255"`
	Language    string      `json:"language" binding:"max=10"`
	Timezone    string      `json:"timezone" binding:"max=50"`
	Currency    string      `json:"currency" binding:"max=3"`
}

// UserSettings is the typed form of the per-user settings document.
// Decoding always starts from the defaults, so keys missing from the stored
// JSON keep their default value.
type UserSettings struct {
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	Preferences   PreferenceSettings   `json:"preferences"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EmailNotifications: true,
		PushNotifications:  true,
		JobAlerts:          true,
		ApplicationUpdates: true,
		InterviewReminders: true,
		Newsletter:         false,
	}
}

func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{
		ProfileVisibility: "public",
		AllowMessages:     true,
	}
}

func DefaultPreferenceSettings() PreferenceSettings {
	return PreferenceSettings{
		JobType:    []string{},
		Industries: []string{},
		Language:   "en",
		Timezone:   "UTC",
		Currency:   "USD",
	}
}

func DefaultUserSettings() UserSettings {
	return UserSettings{
		Notifications: DefaultNotificationSettings(),
		Privacy:       DefaultPrivacySettings(),
		Preferences:   DefaultPreferenceSettings(),
	}
}

func (s *NotificationSettings) UnmarshalJSON(data []byte) error {
	type plain NotificationSettings
	p := plain(DefaultNotificationSettings())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = NotificationSettings(p)
	return nil
}

func (s *PrivacySettings) UnmarshalJSON(data []byte) error {
	type plain PrivacySettings
	p := plain(DefaultPrivacySettings())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = PrivacySettings(p)
	return nil
}

func (s *PreferenceSettings) UnmarshalJSON(data []byte) error {
	type plain PreferenceSettings
	p := plain(DefaultPreferenceSettings())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = PreferenceSettings(p)
	return nil
}

func (s *UserSettings) UnmarshalJSON(data []byte) error {
	type plain UserSettings
	p := plain(DefaultUserSettings())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = UserSettings(p)
	return nil
}

// ParseUserSettings decodes a stored settings document. Empty or null input
// yields the defaults.
func ParseUserSettings(raw []byte) (UserSettings, error) {
	s := DefaultUserSettings()
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return DefaultUserSettings(), err
	}
	return s, nil
}

// SettingsUpdate carries the sections a user wants to replace. Sections left
// nil keep their stored value.
type SettingsUpdate struct {
	Notifications *NotificationSettings `json:"notifications"`
	Privacy       *PrivacySettings      `json:"privacy"`
	Preferences   *PreferenceSettings   `json:"preferences"`
}

// Apply returns a copy of s with every provided section replaced
func (u SettingsUpdate) Apply(s UserSettings) UserSettings {
	if u.Notifications != nil {
		s.Notifications = *u.Notifications
	}
	if u.Privacy != nil {
		s.Privacy = *u.Privacy
	}
	if u.Preferences != nil {
		s.Preferences = *u.Preferences
	}
	return s
}
