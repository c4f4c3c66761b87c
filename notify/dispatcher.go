// Package notify renders and delivers level-up announcements.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"level-bot/leveling"
	"level-bot/utils"
)

// Messenger is the part of a discord session the dispatcher needs.
type Messenger interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// Dispatcher implements leveling.Notifier on top of discord messages.
type Dispatcher struct {
	messenger Messenger
	afterFunc func(d time.Duration, f func()) *time.Timer
}

func NewDispatcher(m Messenger) *Dispatcher {
	return &Dispatcher{messenger: m, afterFunc: time.AfterFunc}
}

// LevelUp sends the announcement. Failures are logged and swallowed.
func (d *Dispatcher) LevelUp(ctx context.Context, notice leveling.LevelUpNotice) {
	channelID, isDM, err := d.destination(ctx, notice)
	if err != nil {
		log.Printf("[Notify] Failed to open DM channel for user %s: %v", notice.UserID, err)
		return
	}
	if channelID == "" {
		log.Printf("[Notify] No destination for level-up of user %s in guild %s", notice.UserID, notice.GuildID)
		return
	}

	msg, err := d.messenger.ChannelMessageSendEmbed(channelID, BuildLevelUpEmbed(notice), discordgo.WithContext(ctx))
	if err != nil {
		log.Printf("[Notify] Failed to send level-up for user %s to channel %s: %v", notice.UserID, channelID, err)
		return
	}

	ttl := notice.Settings.AutoDelete()
	if ttl <= 0 || isDM || msg == nil {
		return
	}
	d.afterFunc(ttl, func() {
		if err := d.messenger.ChannelMessageDelete(msg.ChannelID, msg.ID); err != nil {
			log.Printf("[Notify] Failed to auto-delete level-up message %s: %v", msg.ID, err)
		}
	})
}

func (d *Dispatcher) destination(ctx context.Context, notice leveling.LevelUpNotice) (string, bool, error) {
	if notice.Settings.LevelUpDM {
		ch, err := d.messenger.UserChannelCreate(notice.UserID, discordgo.WithContext(ctx))
		if err != nil {
			return "", true, err
		}
		return ch.ID, true, nil
	}
	if notice.Settings.LevelUpChannelID != "" {
		return notice.Settings.LevelUpChannelID, false, nil
	}
	return notice.ChannelID, false, nil
}

// BuildLevelUpEmbed renders the announcement embed.
func BuildLevelUpEmbed(notice leveling.LevelUpNotice) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🎉 升级啦！",
		Description: fmt.Sprintf("<@%s> 达到了 **%s**", notice.UserID, notice.Tier.DisplayName()),
		Color:       utils.ParseHexColor(notice.Settings.EmbedColor, utils.DefaultEmbedColor),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "经验", Value: fmt.Sprintf("%d", notice.XP), Inline: true},
			{Name: "等级", Value: fmt.Sprintf("%d", notice.Tier.Level), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if notice.Tier.RoleID != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "奖励身份组", Value: fmt.Sprintf("<@&%s>", notice.Tier.RoleID), Inline: true,
		})
	}

	if notice.Next.ID != notice.Tier.ID {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "距离 " + notice.Next.DisplayName(),
			Value: fmt.Sprintf("%s %d%%\n%d / %d XP",
				ProgressBar(notice.Progress.Percent, 12), notice.Progress.Percent,
				notice.Progress.Into, notice.Progress.Needed),
		})
	} else {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "已达到最高等级"}
	}
	return embed
}

// ProgressBar draws a fixed-width bar for a percentage in [0,100].
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}
