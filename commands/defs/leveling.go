package defs

import "github.com/bwmarrin/discordgo"

var minPage = 1.0

var Rank = &discordgo.ApplicationCommand{
	Name:        "rank",
	Description: "Show level, XP and progress",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "等级",
		discordgo.ChineseTW: "等級",
	},
	DescriptionLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "查看等级、经验与升级进度",
		discordgo.ChineseTW: "查看等級、經驗與升級進度",
	},
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "Member to look up",
			Required:    false,
		},
	},
}

var Leaderboard = &discordgo.ApplicationCommand{
	Name:        "leaderboard",
	Description: "Show the XP leaderboard",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "经验排行榜",
		discordgo.ChineseTW: "經驗排行榜",
	},
	DescriptionLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "查看本服务器的经验排行榜",
		discordgo.ChineseTW: "查看本伺服器的經驗排行榜",
	},
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "page",
			Description: "Page number",
			MinValue:    &minPage,
			Required:    false,
		},
	},
}

var Level = &discordgo.ApplicationCommand{
	Name:        "level",
	Description: "Leveling utilities",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "sync",
			Description: "Re-check your level and reward roles",
			DescriptionLocalizations: map[discordgo.Locale]string{
				discordgo.ChineseCN: "重新同步你的等级与奖励身份组",
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "board",
			Description: "Post or refresh the persistent leaderboard in this channel",
			DescriptionLocalizations: map[discordgo.Locale]string{
				discordgo.ChineseCN: "在此频道创建或刷新常驻排行榜",
			},
		},
	},
}

var LevelAdmin = &discordgo.ApplicationCommand{
	Name:        "level-admin",
	Description: "Manage tiers, multipliers and member XP",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "tier-add",
			Description: "Add a tier",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "level", Description: "Level number", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "threshold", Description: "XP needed", Required: true},
				{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Reward role", Required: false},
				{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Display name", Required: false},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "tier-edit",
			Description: "Edit a tier",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "level", Description: "Level number", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "threshold", Description: "XP needed", Required: false},
				{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Reward role", Required: false},
				{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Display name", Required: false},
				{Type: discordgo.ApplicationCommandOptionBoolean, Name: "clear-role", Description: "Remove the reward role", Required: false},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "tier-remove",
			Description: "Remove a tier",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "level", Description: "Level number", Required: true},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "tier-list",
			Description: "List tiers",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "multiplier-set",
			Description: "Create or update a named multiplier",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Multiplier name", Required: true},
				{Type: discordgo.ApplicationCommandOptionNumber, Name: "factor", Description: "Factor", Required: true},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "multiplier-remove",
			Description: "Remove a named multiplier",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Multiplier name", Required: true},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "multiplier-list",
			Description: "List multipliers",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "reset-user",
			Description: "Reset a member to zero XP",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member", Required: true},
			},
		},
	},
}
