package utils

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// GuildMemberAPI is the slice of the discord session used for role sync.
type GuildMemberAPI interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// DiscordRoles reads and mutates member roles through the discord REST API.
type DiscordRoles struct {
	api GuildMemberAPI
}

func NewDiscordRoles(api GuildMemberAPI) *DiscordRoles {
	return &DiscordRoles{api: api}
}

func (d *DiscordRoles) MemberRoles(ctx context.Context, guildID, userID string) ([]string, error) {
	member, err := d.api.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member %s: %w", userID, err)
	}
	return member.Roles, nil
}

func (d *DiscordRoles) AddRole(ctx context.Context, guildID, userID, roleID string) error {
	return d.api.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (d *DiscordRoles) RemoveRole(ctx context.Context, guildID, userID, roleID string) error {
	return d.api.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx))
}
