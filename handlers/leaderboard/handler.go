package leaderboard

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"level-bot/leveling"
	"level-bot/model"
	"level-bot/utils"
)

// PageButtonPrefix is the custom ID prefix of the pagination buttons.
const PageButtonPrefix = "lvl_lb"

// Provider is what the leaderboard handlers need from the bot.
type Provider interface {
	GetConfig() *model.Config
	GetSession() *discordgo.Session
	GetRanking() Ranking
	GetTierSource() leveling.TierSource
}

func embedColor(cfg *model.Config, guildID string) int {
	return utils.ParseHexColor(cfg.LevelingSettings(guildID).EmbedColor, 0xF1C40F)
}

func render(ctx context.Context, b Provider, guildID string, page int) (*discordgo.MessageEmbed, []discordgo.MessageComponent, error) {
	p, err := LoadPage(ctx, b.GetRanking(), b.GetTierSource(), guildID, page)
	if err != nil {
		return nil, nil, err
	}
	embed := BuildEmbed(p, embedColor(b.GetConfig(), guildID), time.Now())
	return embed, utils.CreatePaginationComponents(p.Number, p.TotalPages, PageButtonPrefix), nil
}

// HandleLeaderboardCommand answers /leaderboard [page].
func HandleLeaderboardCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b Provider) {
	page := 1
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "page" {
			page = int(opt.IntValue())
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	embed, components, err := render(ctx, b, i.GuildID, page)
	if err != nil {
		log.Printf("[Leaderboard] Failed to load page %d for guild %s: %v", page, i.GuildID, err)
		utils.SendErrorResponse(s, i, "加载排行榜时出错")
		return
	}

	utils.SendEmbedResponse(s, i, embed, components...)
}

// ParsePageButton extracts the target page from a pagination button ID.
func ParsePageButton(customID string) (int, bool) {
	rest, ok := strings.CutPrefix(customID, PageButtonPrefix+":")
	if !ok {
		return 0, false
	}
	if idx := strings.Index(rest, ":"); idx >= 0 {
		rest = rest[:idx]
	}
	page, err := strconv.Atoi(rest)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

// HandlePageButton re-renders the leaderboard message in place.
func HandlePageButton(s *discordgo.Session, i *discordgo.InteractionCreate, b Provider) {
	page, ok := ParsePageButton(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	embed, components, err := render(ctx, b, i.GuildID, page)
	if err != nil {
		log.Printf("[Leaderboard] Failed to load page %d for guild %s: %v", page, i.GuildID, err)
		utils.SendErrorResponse(s, i, "加载排行榜时出错")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		log.Printf("[Leaderboard] Error updating leaderboard page: %v", err)
	}
}

// HandleBoardInteraction posts the persistent leaderboard in the current channel,
// or refreshes the existing one.
func HandleBoardInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, b Provider) {
	states, err := utils.LoadLeaderboardState()
	if err != nil {
		utils.SendErrorResponse(s, i, "加载排行榜状态时出错")
		log.Printf("Error loading leaderboard states: %v", err)
		return
	}

	if state, ok := states[i.GuildID]; ok && state.MessageID != "" {
		UpdateLeaderboard(b, i.GuildID)
		utils.SendSimpleResponse(s, i, fmt.Sprintf("已更新现有的排行榜 https://discord.com/channels/%s/%s/%s", state.GuildID, state.ChannelID, state.MessageID))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	embed, _, err := render(ctx, b, i.GuildID, 1)
	if err != nil {
		log.Printf("[Leaderboard] Failed to build board for guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, "创建排行榜时出错")
		return
	}

	message, err := s.ChannelMessageSendEmbed(i.ChannelID, embed)
	if err != nil {
		log.Printf("Error sending leaderboard message: %v", err)
		utils.SendErrorResponse(s, i, "创建排行榜时出错")
		return
	}
	states[i.GuildID] = model.LeaderboardState{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		MessageID: message.ID,
	}
	if err := utils.SaveLeaderboardState(states); err != nil {
		log.Printf("Error saving leaderboard state: %v", err)
	}

	utils.SendSimpleResponse(s, i, "已成功创建排行榜，将每 10 分钟自动更新")
}

// UpdateLeaderboard edits the guild's persistent leaderboard message.
func UpdateLeaderboard(b Provider, guildID string) {
	states, err := utils.LoadLeaderboardState()
	if err != nil {
		log.Printf("Error loading leaderboard state for update: %v", err)
		return
	}
	state, ok := states[guildID]
	if !ok {
		log.Printf("No leaderboard state found for guild %s", guildID)
		return
	}
	updateState(b, state)
}

// UpdateAll refreshes every persistent leaderboard message.
func UpdateAll(b Provider) {
	states, err := utils.LoadLeaderboardState()
	if err != nil {
		log.Printf("Error loading leaderboard state for update: %v", err)
		return
	}
	for _, state := range states {
		updateState(b, state)
	}
}

func updateState(b Provider, state model.LeaderboardState) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	embed, _, err := render(ctx, b, state.GuildID, 1)
	if err != nil {
		log.Printf("Failed to build leaderboard embeds for guild %s: %v", state.GuildID, err)
		return
	}
	embeds := []*discordgo.MessageEmbed{embed}
	_, err = b.GetSession().ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: state.ChannelID,
		ID:      state.MessageID,
		Embeds:  &embeds,
	}, discordgo.WithContext(ctx))
	if err != nil {
		log.Printf("Failed to edit leaderboard message for guild %s: %v", state.GuildID, err)
	}
}
