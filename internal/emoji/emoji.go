package emoji

import "sync/atomic"

// emojiMap holds [emoji, fallback] pairs
var emojiMap = map[string][2]string{
	"error":       {"❌", "[ERR]"},
	"warning":     {"⚠️", "[WRN]"},
	"info":        {"ℹ️", "[INF]"},
	"success":     {"✅", "[OK]"},
	"affirmative": {"✅", "[YES]"},
	"negative":    {"❌", "[NO]"},
	"document":    {"📄", "[DOC]"},
	"upload":      {"📥", "[IN]"},
	"remove":      {"🗑️", "[DEL]"},
	"expand":      {"▼", "[-]"},
	"collapse":    {"▶", "[+]"},
	"hourglass":   {"⏳", "[..]"},
	"insight":     {"💡", "[TIP]"},
	"statistics":  {"📊", "[STATS]"},
	"help":        {"❓", "[?]"},
	"rocket":      {"🚀", "[GO]"},
	"door":        {"🚪", "[EXIT]"},
	"back":        {"↩", "[<]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled.Load() {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
