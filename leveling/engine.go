package leveling

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"level-bot/model"
)

var (
	// ErrPersistence marks a failed read or write against the score store.
	ErrPersistence = errors.New("leveling: persistence failure")
)

// Outcome is the tier transition produced by one award.
type Outcome int

const (
	// OutcomeNoOp means the stored tier was already correct and stayed correct.
	OutcomeNoOp Outcome = iota
	// OutcomeSilentSync means only the stored tier reference was repaired.
	OutcomeSilentSync
	// OutcomeLevelUp means this award crossed a threshold.
	OutcomeLevelUp
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSilentSync:
		return "silent_sync"
	case OutcomeLevelUp:
		return "level_up"
	default:
		return "noop"
	}
}

// SkipReason explains why an activity produced no award at all.
type SkipReason string

const (
	SkipNone     SkipReason = ""
	SkipDisabled SkipReason = "disabled"
	SkipCooldown SkipReason = "cooldown"
	SkipNoTiers  SkipReason = "no_tiers"
)

// ScoreStore persists member XP and tier references.
type ScoreStore interface {
	Read(ctx context.Context, guildID, userID, defaultTierID string) (*model.Participant, error)
	Commit(ctx context.Context, guildID, userID string, xp int64, tierID string) error
	SetTier(ctx context.Context, guildID, userID, tierID string) error
}

// TierSource yields a guild's tier table sorted by threshold.
type TierSource interface {
	Tiers(ctx context.Context, guildID string) ([]model.Tier, error)
}

// CooldownGate grants at most one award per member per interval.
type CooldownGate interface {
	TryConsume(ctx context.Context, guildID, userID string, minInterval time.Duration) (bool, error)
}

// RoleManager reads and mutates a member's guild roles.
type RoleManager interface {
	MemberRoles(ctx context.Context, guildID, userID string) ([]string, error)
	AddRole(ctx context.Context, guildID, userID, roleID string) error
	RemoveRole(ctx context.Context, guildID, userID, roleID string) error
}

// Notifier delivers level-up notices. Delivery is best effort.
type Notifier interface {
	LevelUp(ctx context.Context, notice LevelUpNotice)
}

// LevelUpNotice is everything needed to render a level-up message.
type LevelUpNotice struct {
	GuildID   string
	UserID    string
	ChannelID string
	Previous  model.Tier
	Tier      model.Tier
	Next      model.Tier
	XP        int64
	Progress  Progress
	Settings  model.LevelingSettings
}

// AwardResult reports what one award did.
type AwardResult struct {
	Outcome      Outcome
	Skipped      SkipReason
	Amount       int64
	PreviousXP   int64
	XP           int64
	StoredTierID string
	Previous     model.Tier
	Tier         model.Tier
	HasTier      bool
	Next         model.Tier
	Progress     Progress
	RolesAdded   []string
	RolesRemoved []string
	Notified     bool
}

// Options wires an Engine to its collaborators.
type Options struct {
	Store    ScoreStore
	Tiers    TierSource
	Gate     CooldownGate
	Roles    RoleManager
	Notifier Notifier

	// Settings resolves per-guild settings; defaults apply when nil.
	Settings func(guildID string) model.LevelingSettings
	// Timeout bounds one award including role sync and notification.
	Timeout time.Duration
	// Random returns a uniform sample in [0,1).
	Random func() float64
	// ReportError forwards non-fatal failures to an operator channel.
	ReportError func(operation, detail string)
}

// Engine awards XP for activity and keeps tier references and reward roles in line.
type Engine struct {
	store       ScoreStore
	tiers       TierSource
	gate        CooldownGate
	roles       RoleManager
	notifier    Notifier
	settings    func(guildID string) model.LevelingSettings
	timeout     time.Duration
	random      func() float64
	reportError func(operation, detail string)
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		store:       opts.Store,
		tiers:       opts.Tiers,
		gate:        opts.Gate,
		roles:       opts.Roles,
		notifier:    opts.Notifier,
		settings:    opts.Settings,
		timeout:     opts.Timeout,
		random:      opts.Random,
		reportError: opts.ReportError,
	}
	if e.settings == nil {
		e.settings = func(string) model.LevelingSettings { return model.DefaultLevelingSettings() }
	}
	if e.timeout <= 0 {
		e.timeout = 5 * time.Second
	}
	if e.random == nil {
		e.random = rand.Float64
	}
	return e
}

// HandleActivity is the entry point for a member's activity event. It runs on
// its own bounded context so it completes even after the triggering event is gone.
func (e *Engine) HandleActivity(guildID, userID, channelID string) (AwardResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	settings := e.settings(guildID)
	if !settings.Enabled {
		return AwardResult{Skipped: SkipDisabled}, nil
	}

	if e.gate != nil {
		granted, err := e.gate.TryConsume(ctx, guildID, userID, settings.Cooldown())
		if err != nil {
			log.Printf("[Leveling] Cooldown check failed for user %s in guild %s: %v", userID, guildID, err)
			return AwardResult{Skipped: SkipCooldown}, nil
		}
		if !granted {
			return AwardResult{Skipped: SkipCooldown}, nil
		}
	}

	amount := AwardAmount(e.random(), RangeFor(settings), settings.Multipliers)
	return e.apply(ctx, guildID, userID, channelID, amount, settings, false)
}

// Award adds amount XP to a member and runs tier resolution, commit, role sync
// and notification. It bypasses the cooldown gate.
func (e *Engine) Award(ctx context.Context, guildID, userID, channelID string, amount int64) (AwardResult, error) {
	if amount < 0 {
		return AwardResult{}, fmt.Errorf("award amount must not be negative, got %d", amount)
	}
	return e.apply(ctx, guildID, userID, channelID, amount, e.settings(guildID), false)
}

// Resync repairs the stored tier reference and reward roles without awarding XP.
// A member already in sync sees no write, no role change and no notification.
func (e *Engine) Resync(ctx context.Context, guildID, userID string) (AwardResult, error) {
	return e.apply(ctx, guildID, userID, "", 0, e.settings(guildID), true)
}

// Reset returns a member to zero XP and the lowest tier, then syncs roles.
// A member already there with the right roles gets OutcomeNoOp.
func (e *Engine) Reset(ctx context.Context, guildID, userID string) (AwardResult, error) {
	tiers, err := e.tiers.Tiers(ctx, guildID)
	if err != nil {
		return AwardResult{}, fmt.Errorf("%w: load tiers for guild %s: %w", ErrPersistence, guildID, err)
	}
	var lowest model.Tier
	if len(tiers) > 0 {
		lowest = tiers[0]
	}

	p, err := e.store.Read(ctx, guildID, userID, lowest.ID)
	if err != nil {
		return AwardResult{}, fmt.Errorf("%w: read user %s in guild %s: %w", ErrPersistence, userID, guildID, err)
	}
	changed := p.XP != 0 || p.CurrentTierID() != lowest.ID
	if changed {
		if err := e.store.Commit(ctx, guildID, userID, 0, lowest.ID); err != nil {
			return AwardResult{}, fmt.Errorf("%w: reset user %s: %w", ErrPersistence, userID, err)
		}
	}

	st := Describe(0, tiers)
	res := AwardResult{
		Outcome:      OutcomeNoOp,
		PreviousXP:   p.XP,
		StoredTierID: p.CurrentTierID(),
		Tier:         st.Tier,
		HasTier:      st.HasTier,
		Next:         st.Next,
		Progress:     st.Progress,
	}
	if len(tiers) > 0 {
		res.RolesAdded, res.RolesRemoved = e.syncRoles(ctx, guildID, userID, tiers, st.Tier, st.HasTier)
	}
	if changed || len(res.RolesAdded) > 0 || len(res.RolesRemoved) > 0 {
		res.Outcome = OutcomeSilentSync
	}
	return res, nil
}

func (e *Engine) apply(ctx context.Context, guildID, userID, channelID string, amount int64, settings model.LevelingSettings, forceRoleSync bool) (AwardResult, error) {
	tiers, err := e.tiers.Tiers(ctx, guildID)
	if err != nil {
		return AwardResult{}, fmt.Errorf("%w: load tiers for guild %s: %w", ErrPersistence, guildID, err)
	}
	if len(tiers) == 0 {
		return AwardResult{Skipped: SkipNoTiers}, nil
	}

	p, err := e.store.Read(ctx, guildID, userID, tiers[0].ID)
	if err != nil {
		return AwardResult{}, fmt.Errorf("%w: read user %s in guild %s: %w", ErrPersistence, userID, guildID, err)
	}

	storedID := p.CurrentTierID()
	actual, hasActual := ResolveTier(p.XP, tiers)
	updated := p.XP + amount
	after, hasAfter := ResolveTier(updated, tiers)

	crossed := tierID(actual, hasActual) != tierID(after, hasAfter)
	drifted := storedID != tierID(actual, hasActual)
	advanced := crossed || drifted

	res := AwardResult{
		Amount:       amount,
		PreviousXP:   p.XP,
		XP:           updated,
		StoredTierID: storedID,
		Previous:     actual,
		Tier:         after,
		HasTier:      hasAfter,
	}
	switch {
	case crossed:
		res.Outcome = OutcomeLevelUp
	case drifted:
		res.Outcome = OutcomeSilentSync
	default:
		res.Outcome = OutcomeNoOp
	}

	st := Describe(updated, tiers)
	res.Next = st.Next
	res.Progress = st.Progress

	switch {
	case amount > 0:
		if err := e.store.Commit(ctx, guildID, userID, updated, tierID(after, hasAfter)); err != nil {
			return AwardResult{}, fmt.Errorf("%w: commit user %s in guild %s: %w", ErrPersistence, userID, guildID, err)
		}
	case advanced:
		// No XP moved, so only the tier is written and a concurrent award's XP survives.
		if err := e.store.SetTier(ctx, guildID, userID, tierID(after, hasAfter)); err != nil {
			return AwardResult{}, fmt.Errorf("%w: set tier for user %s in guild %s: %w", ErrPersistence, userID, guildID, err)
		}
	}

	if advanced || forceRoleSync {
		res.RolesAdded, res.RolesRemoved = e.syncRoles(ctx, guildID, userID, tiers, after, hasAfter)
	}

	if crossed && hasAfter && e.notifier != nil {
		e.notifier.LevelUp(ctx, LevelUpNotice{
			GuildID:   guildID,
			UserID:    userID,
			ChannelID: channelID,
			Previous:  actual,
			Tier:      after,
			Next:      st.Next,
			XP:        updated,
			Progress:  st.Progress,
			Settings:  settings,
		})
		res.Notified = true
	}

	if res.Outcome != OutcomeNoOp {
		log.Printf("[Leveling] %s: user %s in guild %s now at %d XP, tier %q (was %q)",
			res.Outcome, userID, guildID, updated, tierID(after, hasAfter), storedID)
	}
	return res, nil
}

// PlanRoleChanges returns the reward roles to add and remove so that of all
// tier roles the member holds only keepRoleID.
func PlanRoleChanges(held []string, tiers []model.Tier, keepRoleID string) (add, remove []string) {
	heldSet := make(map[string]bool, len(held))
	for _, r := range held {
		heldSet[r] = true
	}

	seen := make(map[string]bool)
	for _, t := range tiers {
		if t.RoleID == "" || t.RoleID == keepRoleID || seen[t.RoleID] {
			continue
		}
		seen[t.RoleID] = true
		if heldSet[t.RoleID] {
			remove = append(remove, t.RoleID)
		}
	}
	if keepRoleID != "" && !heldSet[keepRoleID] {
		add = append(add, keepRoleID)
	}
	return add, remove
}

func (e *Engine) syncRoles(ctx context.Context, guildID, userID string, tiers []model.Tier, after model.Tier, hasAfter bool) (added, removed []string) {
	if e.roles == nil {
		return nil, nil
	}

	held, err := e.roles.MemberRoles(ctx, guildID, userID)
	if err != nil {
		e.roleFailure(guildID, userID, "fetch member roles", err)
		return nil, nil
	}

	keep := ""
	if hasAfter {
		keep = after.RoleID
	}
	add, remove := PlanRoleChanges(held, tiers, keep)

	for _, roleID := range remove {
		if err := e.roles.RemoveRole(ctx, guildID, userID, roleID); err != nil {
			e.roleFailure(guildID, userID, "remove role "+roleID, err)
			continue
		}
		removed = append(removed, roleID)
	}
	for _, roleID := range add {
		if err := e.roles.AddRole(ctx, guildID, userID, roleID); err != nil {
			e.roleFailure(guildID, userID, "add role "+roleID, err)
			continue
		}
		added = append(added, roleID)
	}
	return added, removed
}

func (e *Engine) roleFailure(guildID, userID, action string, err error) {
	log.Printf("[Leveling] Role sync failed for user %s in guild %s (%s): %v", userID, guildID, action, err)
	if e.reportError != nil {
		e.reportError("Role sync", fmt.Sprintf("guild %s, user %s: %s: %v", guildID, userID, action, err))
	}
}
