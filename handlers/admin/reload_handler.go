package admin

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"level-bot/utils"
)

// Reloader is the part of the bot that /reload drives.
type Reloader interface {
	ReloadConfig() error
}

func HandleReloadConfig(s *discordgo.Session, i *discordgo.InteractionCreate, developerUserIDs []string, r Reloader) {
	if i.Member == nil || i.Member.User == nil {
		utils.SendErrorResponse(s, i, "请在服务器内使用此命令")
		return
	}
	permissionLevel := utils.CheckPermission(i.Member.Roles, i.Member.User.ID, nil, nil, developerUserIDs, nil)
	if permissionLevel != utils.DeveloperPermission {
		utils.SendErrorResponse(s, i, "You do not have permission to use this command.")
		return
	}

	if err := r.ReloadConfig(); err != nil {
		utils.SendErrorResponse(s, i, fmt.Sprintf("配置重载失败: %v", err))
		return
	}
	utils.SendSimpleResponse(s, i, "✅ 配置已成功重载！")
}
