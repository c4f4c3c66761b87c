package handlers

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"level-bot/bot"
	"level-bot/utils"
)

// LevelingStats summarises the leveling store for /system-info.
type LevelingStats struct {
	Participants int
	Tiers        int
	DBSizeMB     int64
}

func collectLevelingStats(ctx context.Context, b *bot.Bot) LevelingStats {
	var stats LevelingStats
	var err error
	if stats.Participants, err = b.Store.CountAllParticipants(ctx); err != nil {
		log.Printf("[SystemInfo] Failed to count participants: %v", err)
	}
	if stats.Tiers, err = b.Store.CountTiers(ctx); err != nil {
		log.Printf("[SystemInfo] Failed to count tiers: %v", err)
	}
	if cfg := b.GetConfig().Database; cfg.Driver == "sqlite3" {
		stats.DBSizeMB = utils.FileSize(cfg.DSN) / 1024 / 1024
	}
	return stats
}

func SystemInfoHandler(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)
	cpuUsage := 0.0
	if len(cpuPercent) > 0 {
		cpuUsage = cpuPercent[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		vm = &mem.VirtualMemoryStat{}
	}

	hostInfo, err := host.Info()
	if err != nil {
		hostInfo = &host.InfoStat{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stats := collectLevelingStats(ctx, b)

	guilds := 0
	if s.State != nil {
		guilds = len(s.State.Guilds)
	}

	embed := &discordgo.MessageEmbed{
		Title: "系统信息",
		Color: 0x5865F2, // Discord Blurple
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💻 OS 版本", Value: fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion), Inline: true},
			{Name: "🔧 内核版本", Value: hostInfo.KernelVersion, Inline: true},
			{Name: "🐹 Go 版本", Value: runtime.Version(), Inline: true},
			{Name: "🔼 CPU 数量", Value: fmt.Sprintf("%d", cpuCount), Inline: true},
			{Name: "🔥 CPU 使用率", Value: fmt.Sprintf("%.1f%%", cpuUsage), Inline: true},
			{Name: "🧠 系统内存", Value: fmt.Sprintf("%.1f%% (%d MB / %d MB)", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024), Inline: true},
			{Name: "🗃️ 数据库", Value: fmt.Sprintf("%s (%d MB)", b.GetConfig().Database.Driver, stats.DBSizeMB), Inline: true},
			{Name: "⏱️ WebSocket 延迟", Value: s.HeartbeatLatency().String(), Inline: true},
			{Name: "🚀 Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "🌍 缓存服务器数", Value: fmt.Sprintf("%d", guilds), Inline: true},
			{Name: "👥 有经验的成员", Value: fmt.Sprintf("%d", stats.Participants), Inline: true},
			{Name: "🏅 等级数", Value: fmt.Sprintf("%d", stats.Tiers), Inline: true},
			{Name: "⏳ 冷却后端", Value: b.GetConfig().Cooldown.Backend, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("系统监控・今天%s", time.Now().Format("15:04")),
		},
	}

	utils.SendEmbedResponse(s, i, embed)
}
