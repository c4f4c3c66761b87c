package levels

import (
	"github.com/bwmarrin/discordgo"

	"level-bot/model"
	"level-bot/utils"
)

// IsLevelAdmin reports whether the invoking member may edit tiers and member XP.
// Members with Manage Server count as admins in guilds without a config entry.
func IsLevelAdmin(cfg *model.Config, i *discordgo.InteractionCreate) bool {
	if i.Member == nil || i.Member.User == nil {
		return false
	}
	serverConfig := cfg.ServerConfigs[i.GuildID]
	level := utils.CheckPermission(i.Member.Roles, i.Member.User.ID, serverConfig.AdminRoleIDs, serverConfig.UserRoleIDs, cfg.DeveloperUserIDs, cfg.SuperAdminRoleIDs)
	if utils.IsAdminLevel(level) {
		return true
	}
	return i.Member.Permissions&discordgo.PermissionManageServer != 0
}
