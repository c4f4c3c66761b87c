package leveling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"level-bot/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Init("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	s := NewStore(db)
	s.now = func() int64 { return 1700000000 }
	return s
}

func TestInit_IsIdempotent(t *testing.T) {
	s := newTestStore(t)
	for _, stmt := range schema {
		_, err := s.DB().Exec(stmt)
		require.NoError(t, err)
	}
}

func TestStore_ReadCreatesParticipant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.Read(ctx, "g1", "u1", "t0")
	require.NoError(t, err)
	require.Equal(t, int64(0), p.XP)
	require.Equal(t, "t0", p.CurrentTierID())

	// A second read must not reset the row.
	require.NoError(t, s.Commit(ctx, "g1", "u1", 250, "t1"))
	p, err = s.Read(ctx, "g1", "u1", "t0")
	require.NoError(t, err)
	require.Equal(t, int64(250), p.XP)
	require.Equal(t, "t1", p.CurrentTierID())
}

func TestStore_ReadWithoutTier(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Read(context.Background(), "g1", "u1", "")
	require.NoError(t, err)
	require.False(t, p.TierID.Valid)
}

func TestStore_ApplyAwardAndSetTier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.ApplyAward(ctx, "g1", "ghost", 10)
	require.ErrorIs(t, err, ErrParticipantNotFound)

	_, err = s.Read(ctx, "g1", "u1", "t0")
	require.NoError(t, err)

	xp, err := s.ApplyAward(ctx, "g1", "u1", 40)
	require.NoError(t, err)
	require.Equal(t, int64(40), xp)
	xp, err = s.ApplyAward(ctx, "g1", "u1", 15)
	require.NoError(t, err)
	require.Equal(t, int64(55), xp)

	require.NoError(t, s.SetTier(ctx, "g1", "u1", "t1"))
	p, err := s.GetParticipant(ctx, "g1", "u1")
	require.NoError(t, err)
	require.Equal(t, "t1", p.CurrentTierID())
	require.Equal(t, int64(55), p.XP)

	require.ErrorIs(t, s.SetTier(ctx, "g1", "ghost", "t1"), ErrParticipantNotFound)
}

func TestStore_LeaderboardAndRank(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Commit(ctx, "g1", "a", 100, ""))
	require.NoError(t, s.Commit(ctx, "g1", "b", 300, ""))
	require.NoError(t, s.Commit(ctx, "g1", "c", 300, ""))
	require.NoError(t, s.Commit(ctx, "g1", "d", 5, ""))
	require.NoError(t, s.Commit(ctx, "g2", "z", 9999, ""))

	page, err := s.ListParticipants(ctx, "g1", 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "b", page[0].UserID)
	require.Equal(t, "c", page[1].UserID)

	page, err = s.ListParticipants(ctx, "g1", 2, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "d"}, []string{page[0].UserID, page[1].UserID})

	count, err := s.CountParticipants(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, 4, count)

	all, err := s.CountAllParticipants(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, all)

	for user, want := range map[string]int{"b": 1, "c": 2, "a": 3, "d": 4} {
		rank, err := s.Rank(ctx, "g1", user)
		require.NoError(t, err)
		require.Equal(t, want, rank, user)
	}

	_, err = s.Rank(ctx, "g1", "ghost")
	require.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestStore_TierCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t5 := &model.Tier{GuildID: "g1", Level: 5, Threshold: 1724, RoleID: "r5"}
	t0 := &model.Tier{GuildID: "g1", Level: 0, Threshold: 0, RoleID: "r0"}
	t1 := &model.Tier{GuildID: "g1", Level: 1, Threshold: 500, RoleID: "r1", Name: "Regular"}
	for _, tier := range []*model.Tier{t5, t0, t1} {
		require.NoError(t, s.CreateTier(ctx, tier))
		require.NotEmpty(t, tier.ID)
	}

	tiers, err := s.ListTiers(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	require.Equal(t, []int{0, 1, 5}, []int{tiers[0].Level, tiers[1].Level, tiers[2].Level})

	// Level is unique per guild.
	require.Error(t, s.CreateTier(ctx, &model.Tier{GuildID: "g1", Level: 1, Threshold: 600}))

	got, err := s.GetTierByLevel(ctx, "g1", 1)
	require.NoError(t, err)
	require.Equal(t, "Regular", got.Name)

	got.Threshold = 450
	require.NoError(t, s.UpdateTier(ctx, *got))
	got, err = s.GetTierByLevel(ctx, "g1", 1)
	require.NoError(t, err)
	require.Equal(t, int64(450), got.Threshold)

	require.NoError(t, s.DeleteTier(ctx, "g1", got.ID))
	require.ErrorIs(t, s.DeleteTier(ctx, "g1", got.ID), ErrTierNotFound)
	_, err = s.GetTierByLevel(ctx, "g1", 1)
	require.ErrorIs(t, err, ErrTierNotFound)

	require.ErrorIs(t, s.UpdateTier(ctx, model.Tier{GuildID: "g1", ID: "missing"}), ErrTierNotFound)

	count, err := s.CountTiers(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestStore_Multipliers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m, err := s.UpsertMultiplier(ctx, "g1", "weekend", 1.5)
	require.NoError(t, err)
	id := m.ID

	m, err = s.UpsertMultiplier(ctx, "g1", "weekend", 2)
	require.NoError(t, err)
	require.Equal(t, id, m.ID)
	require.Equal(t, 2.0, m.Factor)

	_, err = s.UpsertMultiplier(ctx, "g2", "booster", 1.25)
	require.NoError(t, err)

	list, err := s.ListMultipliers(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	all, err := s.AllMultipliers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "booster", all["g2"][0].Name)

	require.NoError(t, s.DeleteMultiplier(ctx, "g1", "weekend"))
	require.ErrorIs(t, s.DeleteMultiplier(ctx, "g1", "weekend"), ErrMultiplierNotFound)
}
