package utils

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CreatePaginationComponents builds previous/next buttons with a page indicator.
// Button custom IDs are "<prefix>:<target page>[:args...]".
func CreatePaginationComponents(currentPage, totalPages int, customIDPrefix string, args ...string) []discordgo.MessageComponent {
	if totalPages <= 1 {
		return nil
	}

	suffix := ""
	if len(args) > 0 {
		suffix = ":" + strings.Join(args, ":")
	}
	target := func(page int) string {
		return fmt.Sprintf("%s:%d%s", customIDPrefix, page, suffix)
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "上一页",
					Style:    discordgo.PrimaryButton,
					Disabled: currentPage <= 1,
					CustomID: target(currentPage - 1),
				},
				discordgo.Button{
					Label:    fmt.Sprintf("%d / %d", currentPage, totalPages),
					Style:    discordgo.SecondaryButton,
					Disabled: true,
					CustomID: customIDPrefix + ":indicator",
				},
				discordgo.Button{
					Label:    "下一页",
					Style:    discordgo.PrimaryButton,
					Disabled: currentPage >= totalPages,
					CustomID: target(currentPage + 1),
				},
			},
		},
	}
}
