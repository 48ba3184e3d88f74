package emoji

import "testing"

func TestGetEmoji(t *testing.T) {
	defer SetEmojiDisabled(false)

	tests := []struct {
		key      string
		disabled bool
		want     string
	}{
		{key: "affirmative", disabled: false, want: "✅"},
		{key: "affirmative", disabled: true, want: "[YES]"},
		{key: "negative", disabled: true, want: "[NO]"},
		{key: "unknown", disabled: false, want: "[?]"},
	}

	for _, tt := range tests {
		SetEmojiDisabled(tt.disabled)
		if got := GetEmoji(tt.key); got != tt.want {
			t.Errorf("GetEmoji(%q) disabled=%v = %q, want %q", tt.key, tt.disabled, got, tt.want)
		}
	}
}
