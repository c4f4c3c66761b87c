package utils

import (
	"log"
	"strconv"
	"strings"
)

// DefaultEmbedColor is used when a guild configures no embed colour.
const DefaultEmbedColor = 0x5865F2

// ParseHexColor parses a hex color string (like "#FACF24") into an integer for Discord embeds.
// Returns fallback if the string is empty or malformed.
func ParseHexColor(hexColor string, fallback int) int {
	if hexColor == "" {
		return fallback
	}

	hexColor = strings.TrimPrefix(strings.TrimSpace(hexColor), "#")
	if len(hexColor) != 6 {
		log.Printf("Invalid hex color '%s': expected 6 digits", hexColor)
		return fallback
	}

	colorInt, err := strconv.ParseInt(hexColor, 16, 64)
	if err != nil {
		log.Printf("Failed to parse hex color '%s': %v", hexColor, err)
		return fallback
	}

	return int(colorInt)
}
