package levels

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"level-bot/bot"
	"level-bot/leveling"
	"level-bot/model"
	"level-bot/utils"
	leveling_db "level-bot/utils/database/leveling"
)

// HandleLevelAdmin dispatches /level-admin subcommands.
func HandleLevelAdmin(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !IsLevelAdmin(b.GetConfig(), i) {
		utils.SendErrorResponse(s, i, "您没有权限使用此命令")
		return
	}
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error sending deferred response: %v", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		name, opts := subcommand(i.ApplicationCommandData())
		message, err := runAdmin(ctx, b, i.GuildID, name, opts)
		if err != nil {
			log.Printf("[LevelAdmin] %s failed in guild %s: %v", name, i.GuildID, err)
			utils.SendFollowUpError(s, i.Interaction, describeAdminError(err))
			return
		}
		utils.SendFollowUp(s, i.Interaction, message)

		if name != "tier-list" && name != "multiplier-list" {
			detail := fmt.Sprintf("<@%s> 在服务器 %s 执行 %s", i.Member.User.ID, i.GuildID, name)
			if err := utils.LogInfo(s, b.GetConfig().LogChannelID, "等级管理", name, detail); err != nil {
				log.Printf("Failed to send log: %v", err)
			}
		}
	}()
}

func describeAdminError(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTier):
		return err.Error()
	case errors.Is(err, leveling_db.ErrTierNotFound):
		return "找不到该等级"
	case errors.Is(err, leveling_db.ErrMultiplierNotFound):
		return "找不到该倍率"
	case errors.Is(err, errMissingOption):
		return err.Error()
	default:
		return "操作失败，请查看日志"
	}
}

var errMissingOption = errors.New("缺少必要参数")

func runAdmin(ctx context.Context, b *bot.Bot, guildID, name string, opts optionMap) (string, error) {
	tiers := NewTierAdmin(b.Store, b.Tiers)

	switch name {
	case "tier-add":
		level, ok := opts.int64Opt("level")
		threshold, ok2 := opts.int64Opt("threshold")
		if !ok || !ok2 {
			return "", errMissingOption
		}
		tier := model.Tier{GuildID: guildID, Level: int(level), Threshold: threshold}
		tier.RoleID, _ = opts.roleOpt("role")
		tier.Name, _ = opts.stringOpt("name")
		created, err := tiers.Add(ctx, tier)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ 已添加等级 **%s** (Lv.%d, %d XP)", created.DisplayName(), created.Level, created.Threshold), nil

	case "tier-edit":
		level, ok := opts.int64Opt("level")
		if !ok {
			return "", errMissingOption
		}
		updated, err := tiers.Edit(ctx, guildID, int(level), opts.tierChange())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ 已更新等级 **%s** (Lv.%d, %d XP)", updated.DisplayName(), updated.Level, updated.Threshold), nil

	case "tier-remove":
		level, ok := opts.int64Opt("level")
		if !ok {
			return "", errMissingOption
		}
		removed, err := tiers.Remove(ctx, guildID, int(level))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ 已删除等级 **%s**，成员将在下次获得经验时重新计算", removed.DisplayName()), nil

	case "tier-list":
		list, err := tiers.List(ctx, guildID)
		if err != nil {
			return "", err
		}
		return FormatTierList(list), nil

	case "multiplier-set":
		mName, ok := opts.stringOpt("name")
		factorOpt, ok2 := opts["factor"]
		if !ok || !ok2 {
			return "", errMissingOption
		}
		factor := factorOpt.FloatValue()
		if factor <= 0 {
			return "", fmt.Errorf("%w: 倍率必须大于 0", errMissingOption)
		}
		m, err := b.Store.UpsertMultiplier(ctx, guildID, mName, factor)
		if err != nil {
			return "", err
		}
		if err := b.ReloadMultipliers(ctx, guildID); err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ 倍率 **%s** 已设为 × %.2f", m.Name, m.Factor), nil

	case "multiplier-remove":
		mName, ok := opts.stringOpt("name")
		if !ok {
			return "", errMissingOption
		}
		if err := b.Store.DeleteMultiplier(ctx, guildID, mName); err != nil {
			return "", err
		}
		if err := b.ReloadMultipliers(ctx, guildID); err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ 已删除倍率 **%s**", mName), nil

	case "multiplier-list":
		list, err := b.Store.ListMultipliers(ctx, guildID)
		if err != nil {
			return "", err
		}
		return FormatMultiplierList(list), nil

	case "reset-user":
		user, ok := opts.userOpt("user")
		if !ok {
			return "", errMissingOption
		}
		res, err := b.Engine.Reset(ctx, guildID, user.ID)
		if err != nil {
			return "", err
		}
		if res.Outcome == leveling.OutcomeNoOp {
			return fmt.Sprintf("ℹ️ <@%s> 已经处于初始状态，无需重置", user.ID), nil
		}
		return fmt.Sprintf("✅ 已将 <@%s> 重置为 0 XP（移除身份组 %d 个）", user.ID, len(res.RolesRemoved)), nil

	default:
		return "", fmt.Errorf("unknown subcommand %q", name)
	}
}
