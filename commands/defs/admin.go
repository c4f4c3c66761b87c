package defs

import "github.com/bwmarrin/discordgo"

var SystemInfo = &discordgo.ApplicationCommand{
	Name:        "system-info",
	Description: "Show host and leveling statistics",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "系统信息",
		discordgo.ChineseTW: "系統資訊",
	},
}

var Reload = &discordgo.ApplicationCommand{
	Name:        "reload",
	Description: "Reload configuration",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "重载配置",
		discordgo.ChineseTW: "重載配置",
	},
}
