package utils

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

type LogLevel string

const (
	Info  LogLevel = "INFO"
	Warn  LogLevel = "WARN"
	Error LogLevel = "ERROR"
)

// LogSender is the part of a discord session used for operator logs.
type LogSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

func getColor(level LogLevel) int {
	switch level {
	case Info:
		return 3066993 // Green
	case Warn:
		return 15105570 // Orange
	case Error:
		return 15158332 // Red
	default:
		return 3447003 // Blue
	}
}

// LogEmbed builds the embed posted to the log channel.
func LogEmbed(level LogLevel, module, operation, extraInfo string) *discordgo.MessageEmbed {
	if len(extraInfo) > 1024 {
		extraInfo = extraInfo[:1021] + "..."
	}
	return &discordgo.MessageEmbed{
		Title: string(level) + " Log",
		Color: getColor(level),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "模块", Value: module},
			{Name: "操作", Value: operation},
			{Name: "附加信息", Value: extraInfo},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func sendLog(s LogSender, channelID string, level LogLevel, module, operation, extraInfo string) error {
	if s == nil || channelID == "" {
		return nil
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, LogEmbed(level, module, operation, extraInfo)); err != nil {
		return fmt.Errorf("failed to send log to channel %s: %w", channelID, err)
	}
	return nil
}

func LogInfo(s LogSender, channelID, module, operation, extraInfo string) error {
	return sendLog(s, channelID, Info, module, operation, extraInfo)
}

func LogWarn(s LogSender, channelID, module, operation, extraInfo string) error {
	return sendLog(s, channelID, Warn, module, operation, extraInfo)
}

func LogError(s LogSender, channelID, module, operation, extraInfo string) error {
	return sendLog(s, channelID, Error, module, operation, extraInfo)
}
