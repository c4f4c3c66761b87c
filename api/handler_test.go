package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"level-bot/leveling"
	"level-bot/model"
	leveling_db "level-bot/utils/database/leveling"
)

func newTestServer(t *testing.T) (*leveling_db.Store, http.Handler) {
	t.Helper()
	db, err := leveling_db.Init("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := leveling_db.NewStore(db)

	ctx := context.Background()
	for _, tier := range []*model.Tier{
		{GuildID: "g1", Level: 0, Threshold: 0, RoleID: "r0"},
		{GuildID: "g1", Level: 1, Threshold: 500, RoleID: "r1"},
		{GuildID: "g1", Level: 5, Threshold: 1724, RoleID: "r5"},
	} {
		require.NoError(t, store.CreateTier(ctx, tier))
	}
	require.NoError(t, store.Commit(ctx, "g1", "u1", 510, ""))
	require.NoError(t, store.Commit(ctx, "g1", "u2", 2000, ""))

	h := NewHandler(store, leveling.NewTierCache(store, time.Minute), db)
	return store, NewServer(h)
}

func get(t *testing.T, srv http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	_, srv := newTestServer(t)
	rec := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLeaderboard(t *testing.T) {
	_, srv := newTestServer(t)

	rec := get(t, srv, "/api/guilds/g1/leaderboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp leaderboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, "u2", resp.Entries[0].UserID)
	require.Equal(t, 5, *resp.Entries[0].Level)
	require.Equal(t, 2, resp.Entries[1].Position)

	rec = get(t, srv, "/api/guilds/g1/leaderboard?page=zero")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMember(t *testing.T) {
	_, srv := newTestServer(t)

	rec := get(t, srv, "/api/guilds/g1/members/u1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp memberResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(510), resp.XP)
	require.Equal(t, 2, resp.Rank)
	require.Equal(t, 1, resp.Tier.Level)
	require.Equal(t, 5, resp.Next.Level)
	require.Equal(t, int64(1214), resp.Progress.Remaining)

	rec = get(t, srv, "/api/guilds/g1/members/nobody")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTiers(t *testing.T) {
	_, srv := newTestServer(t)

	rec := get(t, srv, "/api/guilds/g1/tiers")
	require.Equal(t, http.StatusOK, rec.Code)
	var tiers []model.Tier
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tiers))
	require.Len(t, tiers, 3)
	require.Equal(t, int64(1724), tiers[2].Threshold)

	rec = get(t, srv, "/api/guilds/empty/tiers")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}
