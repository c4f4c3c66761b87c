package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"level-bot/leveling"
	"level-bot/model"
)

type sent struct {
	channelID string
	embed     *discordgo.MessageEmbed
}

type fakeMessenger struct {
	mu       sync.Mutex
	sent     []sent
	deleted  []string
	dmOpened []string
	sendErr  error
}

func (f *fakeMessenger) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sent{channelID: channelID, embed: embed})
	return &discordgo.Message{ID: "m1", ChannelID: channelID}, nil
}

func (f *fakeMessenger) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, channelID+"/"+messageID)
	return nil
}

func (f *fakeMessenger) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dmOpened = append(f.dmOpened, recipientID)
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

type deferred struct {
	delay time.Duration
	fn    func()
}

func newTestDispatcher(m *fakeMessenger) (*Dispatcher, *[]deferred) {
	var pending []deferred
	d := NewDispatcher(m)
	d.afterFunc = func(delay time.Duration, fn func()) *time.Timer {
		pending = append(pending, deferred{delay: delay, fn: fn})
		return nil
	}
	return d, &pending
}

func sampleNotice() leveling.LevelUpNotice {
	return leveling.LevelUpNotice{
		GuildID:   "g1",
		UserID:    "u1",
		ChannelID: "activity",
		Previous:  model.Tier{ID: "t0", Level: 0},
		Tier:      model.Tier{ID: "t1", Level: 1, Threshold: 500, RoleID: "r1", Name: "Regular"},
		Next:      model.Tier{ID: "t5", Level: 5, Threshold: 1724},
		XP:        510,
		Progress:  leveling.Progress{Needed: 1224, Into: 10, Remaining: 1214, Percent: 1},
		Settings:  model.DefaultLevelingSettings(),
	}
}

func TestDispatcher_FallsBackToActivityChannel(t *testing.T) {
	m := &fakeMessenger{}
	d, pending := newTestDispatcher(m)

	d.LevelUp(context.Background(), sampleNotice())

	require.Len(t, m.sent, 1)
	require.Equal(t, "activity", m.sent[0].channelID)
	require.Empty(t, *pending)
}

func TestDispatcher_ConfiguredChannelAndAutoDelete(t *testing.T) {
	m := &fakeMessenger{}
	d, pending := newTestDispatcher(m)
	notice := sampleNotice()
	notice.Settings.LevelUpChannelID = "levels"
	notice.Settings.AutoDeleteSeconds = 30

	d.LevelUp(context.Background(), notice)

	require.Len(t, m.sent, 1)
	require.Equal(t, "levels", m.sent[0].channelID)
	require.Len(t, *pending, 1)
	require.Equal(t, 30*time.Second, (*pending)[0].delay)

	(*pending)[0].fn()
	require.Equal(t, []string{"levels/m1"}, m.deleted)
}

func TestDispatcher_DirectMessage(t *testing.T) {
	m := &fakeMessenger{}
	d, pending := newTestDispatcher(m)
	notice := sampleNotice()
	notice.Settings.LevelUpDM = true
	notice.Settings.AutoDeleteSeconds = 30

	d.LevelUp(context.Background(), notice)

	require.Equal(t, []string{"u1"}, m.dmOpened)
	require.Equal(t, "dm-u1", m.sent[0].channelID)
	require.Empty(t, *pending)
}

func TestDispatcher_SendFailureIsSwallowed(t *testing.T) {
	m := &fakeMessenger{sendErr: errors.New("missing access")}
	d, pending := newTestDispatcher(m)
	notice := sampleNotice()
	notice.Settings.AutoDeleteSeconds = 30

	require.NotPanics(t, func() { d.LevelUp(context.Background(), notice) })
	require.Empty(t, *pending)
}

func TestBuildLevelUpEmbed(t *testing.T) {
	embed := BuildLevelUpEmbed(sampleNotice())
	require.Contains(t, embed.Description, "<@u1>")
	require.Contains(t, embed.Description, "Regular")
	require.Len(t, embed.Fields, 4)
	require.Equal(t, "<@&r1>", embed.Fields[2].Value)
	require.Contains(t, embed.Fields[3].Value, "1%")
	require.Nil(t, embed.Footer)

	top := sampleNotice()
	top.Next = top.Tier
	embed = BuildLevelUpEmbed(top)
	require.NotNil(t, embed.Footer)
}

func TestProgressBar(t *testing.T) {
	require.Equal(t, "▱▱▱▱", ProgressBar(0, 4))
	require.Equal(t, "▰▰▱▱", ProgressBar(50, 4))
	require.Equal(t, "▰▰▰▰", ProgressBar(100, 4))
	require.Equal(t, "▰▰▰▰", ProgressBar(250, 4))
	require.Equal(t, "▱▱▱▱", ProgressBar(-3, 4))
	require.Equal(t, "", ProgressBar(50, 0))
}
