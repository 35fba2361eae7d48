package domain

import (
	"fmt"
	"strings"
)

// StyleKey identifies one of the copywriting frameworks a rewrite is asked to follow.
type StyleKey string

const (
	StyleAIDA  StyleKey = "AIDA"
	StylePAS   StyleKey = "PAS"
	Style4C    StyleKey = "4C"
	StyleFAB   StyleKey = "FAB"
	StyleQUEST StyleKey = "QUEST"
	StyleBAB   StyleKey = "BAB"

	DefaultStyle = StyleAIDA
)

// Style pairs a key with its display label.
type Style struct {
	Key   StyleKey
	Label string
}

var styles = []Style{
	{Key: StyleAIDA, Label: "AIDA模型 (经典漏斗式)"},
	{Key: StylePAS, Label: "PAS模型 (痛点刺激)"},
	{Key: Style4C, Label: "4C法则 (互联网友好型)"},
	{Key: StyleFAB, Label: "FAB法则 (产品卖点转化)"},
	{Key: StyleQUEST, Label: "QUEST模型 (故事化营销)"},
	{Key: StyleBAB, Label: "Before-After-Bridge (对比冲击)"},
}

// Styles returns the six styles in display order.
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// ParseStyleKey matches raw against the known keys, ignoring case and surrounding space.
func ParseStyleKey(raw string) (StyleKey, error) {
	raw = strings.TrimSpace(raw)
	for _, s := range styles {
		if strings.EqualFold(string(s.Key), raw) {
			return s.Key, nil
		}
	}
	return "", fmt.Errorf("unknown style %q (want one of %s)", raw, strings.Join(StyleKeyNames(), ", "))
}

// StyleKeyNames lists the raw keys in display order.
func StyleKeyNames() []string {
	names := make([]string, 0, len(styles))
	for _, s := range styles {
		names = append(names, string(s.Key))
	}
	return names
}

// Valid reports whether k is one of the six keys.
func (k StyleKey) Valid() bool {
	for _, s := range styles {
		if s.Key == k {
			return true
		}
	}
	return false
}

// Label returns the display label, or the raw key when unknown.
func (k StyleKey) Label() string {
	for _, s := range styles {
		if s.Key == k {
			return s.Label
		}
	}
	return string(k)
}

// Next cycles to the following style in display order.
func (k StyleKey) Next() StyleKey {
	for i, s := range styles {
		if s.Key == k {
			return styles[(i+1)%len(styles)].Key
		}
	}
	return DefaultStyle
}
