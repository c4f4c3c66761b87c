package leveling

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"level-bot/model"
)

type memStore struct {
	mu      sync.Mutex
	rows       map[string]*model.Participant
	commits    int
	tierWrites int
	failOn     string
	// beforeWrite runs under the lock just before a write lands.
	beforeWrite func(p *model.Participant)
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]*model.Participant)}
}

func (m *memStore) put(guildID, userID string, xp int64, tierID string) {
	m.rows[guildID+":"+userID] = &model.Participant{
		GuildID: guildID,
		UserID:  userID,
		XP:      xp,
		TierID:  sql.NullString{String: tierID, Valid: tierID != ""},
	}
}

func (m *memStore) get(guildID, userID string) *model.Participant {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[guildID+":"+userID]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (m *memStore) Read(ctx context.Context, guildID, userID, defaultTierID string) (*model.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "read" {
		return nil, errors.New("disk on fire")
	}
	key := guildID + ":" + userID
	if _, ok := m.rows[key]; !ok {
		m.rows[key] = &model.Participant{
			GuildID: guildID,
			UserID:  userID,
			TierID:  sql.NullString{String: defaultTierID, Valid: defaultTierID != ""},
		}
	}
	cp := *m.rows[key]
	return &cp, nil
}

func (m *memStore) Commit(ctx context.Context, guildID, userID string, xp int64, tierID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "commit" {
		return errors.New("disk on fire")
	}
	m.commits++
	key := guildID + ":" + userID
	p, ok := m.rows[key]
	if !ok {
		p = &model.Participant{GuildID: guildID, UserID: userID}
		m.rows[key] = p
	}
	if m.beforeWrite != nil {
		m.beforeWrite(p)
	}
	p.XP = xp
	p.TierID = sql.NullString{String: tierID, Valid: tierID != ""}
	return nil
}

func (m *memStore) SetTier(ctx context.Context, guildID, userID, tierID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == "commit" {
		return errors.New("disk on fire")
	}
	p, ok := m.rows[guildID+":"+userID]
	if !ok {
		return errors.New("no such participant")
	}
	m.tierWrites++
	if m.beforeWrite != nil {
		m.beforeWrite(p)
	}
	p.TierID = sql.NullString{String: tierID, Valid: tierID != ""}
	return nil
}

func (m *memStore) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits + m.tierWrites
}

type staticTiers map[string][]model.Tier

func (s staticTiers) Tiers(ctx context.Context, guildID string) ([]model.Tier, error) {
	return s[guildID], nil
}

type fakeRoles struct {
	mu      sync.Mutex
	held    map[string][]string
	added   []string
	removed []string
	failAdd bool
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{held: make(map[string][]string)}
}

func (f *fakeRoles) MemberRoles(ctx context.Context, guildID, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.held[guildID+":"+userID]...), nil
}

func (f *fakeRoles) AddRole(ctx context.Context, guildID, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdd {
		return errors.New("missing permissions")
	}
	key := guildID + ":" + userID
	f.held[key] = append(f.held[key], roleID)
	f.added = append(f.added, roleID)
	return nil
}

func (f *fakeRoles) RemoveRole(ctx context.Context, guildID, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := guildID + ":" + userID
	var kept []string
	for _, r := range f.held[key] {
		if r != roleID {
			kept = append(kept, r)
		}
	}
	f.held[key] = kept
	f.removed = append(f.removed, roleID)
	return nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []LevelUpNotice
}

func (f *fakeNotifier) LevelUp(ctx context.Context, notice LevelUpNotice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, notice)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notices)
}

type scriptedGate struct {
	answers []bool
	calls   int
	err     error
}

func (g *scriptedGate) TryConsume(ctx context.Context, guildID, userID string, minInterval time.Duration) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	ans := true
	if g.calls < len(g.answers) {
		ans = g.answers[g.calls]
	}
	g.calls++
	return ans, nil
}
