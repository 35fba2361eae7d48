package helpers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/doeshing/copywriter-go/internal/ports"
)

// ====================================================================================
// Text Helpers
// ====================================================================================

// Truncate shortens text to at most limit runes, appending "..." when cut.
// Newlines are folded so a preview stays on one line.
func Truncate(text string, limit int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if limit <= 0 || utf8.RuneCountInString(flat) <= limit {
		return flat
	}
	return string([]rune(flat)[:limit]) + "..."
}

// ====================================================================================
// Prompt Helpers
// ====================================================================================

// ConfirmDestructive asks before an irreversible action unless assumeYes is set.
// A non-interactive prompter refuses.
func ConfirmDestructive(prompter ports.ConfirmationPrompter, assumeYes bool, question string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if prompter == nil || !prompter.Enabled() {
		return false, fmt.Errorf("confirmation required; rerun with --yes")
	}
	return prompter.Confirm(question)
}

// ====================================================================================
// Map Helpers
// ====================================================================================

// TraverseNestedMap navigates through nested maps using a key path
func TraverseNestedMap(data interface{}, keyPath []string) (interface{}, bool) {
	if len(keyPath) == 0 {
		return data, true
	}

	switch typed := data.(type) {
	case map[string]interface{}:
		value, exists := typed[keyPath[0]]
		if !exists {
			return nil, false
		}
		return TraverseNestedMap(value, keyPath[1:])
	default:
		return nil, false
	}
}
