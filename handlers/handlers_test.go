package handlers

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestShouldAward(t *testing.T) {
	msg := func(author *discordgo.User, guildID, webhookID string) *discordgo.MessageCreate {
		return &discordgo.MessageCreate{Message: &discordgo.Message{
			Author: author, GuildID: guildID, WebhookID: webhookID, ChannelID: "c1",
		}}
	}
	member := &discordgo.User{ID: "u1"}

	require.True(t, ShouldAward(msg(member, "g1", "")))
	require.False(t, ShouldAward(msg(&discordgo.User{ID: "b1", Bot: true}, "g1", "")))
	require.False(t, ShouldAward(msg(&discordgo.User{ID: "s1", System: true}, "g1", "")))
	require.False(t, ShouldAward(msg(member, "", "")))
	require.False(t, ShouldAward(msg(member, "g1", "w1")))
	require.False(t, ShouldAward(msg(nil, "g1", "")))
}
