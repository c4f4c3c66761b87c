// Package api serves a read-only JSON view of leveling data.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"level-bot/handlers/leaderboard"
	"level-bot/leveling"
	"level-bot/model"
	leveling_db "level-bot/utils/database/leveling"
)

// Store is the read side of the leveling store.
type Store interface {
	leaderboard.Ranking
	GetParticipant(ctx context.Context, guildID, userID string) (*model.Participant, error)
	Rank(ctx context.Context, guildID, userID string) (int, error)
}

// Pinger reports database liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	store Store
	tiers leveling.TierSource
	db    Pinger
}

func NewHandler(store Store, tiers leveling.TierSource, db Pinger) *Handler {
	return &Handler{store: store, tiers: tiers, db: db}
}

// NewServer builds the echo instance with all routes registered.
func NewServer(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	h.RegisterRoutes(e)
	return e
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.handleHealth)
	e.GET("/api/guilds/:guild/leaderboard", h.handleLeaderboard)
	e.GET("/api/guilds/:guild/members/:user", h.handleMember)
	e.GET("/api/guilds/:guild/tiers", h.handleTiers)
}

type errorResponse struct {
	Error string `json:"error"`
}

type leaderboardEntry struct {
	Position int    `json:"position"`
	UserID   string `json:"user_id"`
	XP       int64  `json:"xp"`
	Level    *int   `json:"level"`
	TierName string `json:"tier_name,omitempty"`
}

type leaderboardResponse struct {
	GuildID    string             `json:"guild_id"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
	Total      int                `json:"total"`
	Entries    []leaderboardEntry `json:"entries"`
}

type memberResponse struct {
	GuildID  string            `json:"guild_id"`
	UserID   string            `json:"user_id"`
	XP       int64             `json:"xp"`
	Rank     int               `json:"rank"`
	Tier     *model.Tier       `json:"tier"`
	Next     *model.Tier       `json:"next"`
	Progress leveling.Progress `json:"progress"`
}

func (h *Handler) handleHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleLeaderboard(c echo.Context) error {
	guildID := c.Param("guild")
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "page must be a positive integer"})
		}
		page = n
	}

	p, err := leaderboard.LoadPage(c.Request().Context(), h.store, h.tiers, guildID, page)
	if err != nil {
		c.Logger().Errorf("leaderboard for guild %s: %v", guildID, err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load leaderboard"})
	}

	resp := leaderboardResponse{
		GuildID:    guildID,
		Page:       p.Number,
		TotalPages: p.TotalPages,
		Total:      p.Total,
		Entries:    make([]leaderboardEntry, 0, len(p.Entries)),
	}
	for _, e := range p.Entries {
		entry := leaderboardEntry{Position: e.Position, UserID: e.Participant.UserID, XP: e.Participant.XP}
		if e.HasTier {
			level := e.Tier.Level
			entry.Level = &level
			entry.TierName = e.Tier.DisplayName()
		}
		resp.Entries = append(resp.Entries, entry)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleMember(c echo.Context) error {
	guildID, userID := c.Param("guild"), c.Param("user")
	ctx := c.Request().Context()

	p, err := h.store.GetParticipant(ctx, guildID, userID)
	if errors.Is(err, leveling_db.ErrParticipantNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "member has no leveling record"})
	}
	if err != nil {
		c.Logger().Errorf("member %s in guild %s: %v", userID, guildID, err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load member"})
	}

	tiers, err := h.tiers.Tiers(ctx, guildID)
	if err != nil {
		c.Logger().Errorf("tiers for guild %s: %v", guildID, err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load tiers"})
	}
	rank, err := h.store.Rank(ctx, guildID, userID)
	if err != nil {
		c.Logger().Errorf("rank %s in guild %s: %v", userID, guildID, err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to rank member"})
	}

	st := leveling.Describe(p.XP, tiers)
	resp := memberResponse{GuildID: guildID, UserID: userID, XP: p.XP, Rank: rank, Progress: st.Progress}
	if st.HasTier {
		resp.Tier = &st.Tier
	}
	if st.Next.ID != "" {
		resp.Next = &st.Next
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleTiers(c echo.Context) error {
	guildID := c.Param("guild")
	tiers, err := h.tiers.Tiers(c.Request().Context(), guildID)
	if err != nil {
		c.Logger().Errorf("tiers for guild %s: %v", guildID, err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load tiers"})
	}
	if tiers == nil {
		tiers = []model.Tier{}
	}
	return c.JSON(http.StatusOK, tiers)
}
