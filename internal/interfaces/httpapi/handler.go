package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/championship-simulator/internal/platform/cache"
	"github.com/riskibarqy/championship-simulator/internal/platform/logging"
	"github.com/riskibarqy/championship-simulator/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

// CacheReporter exposes hit/miss counters of a cached repository.
type CacheReporter interface {
	Stats() cache.Stats
}

type Handler struct {
	championshipService *usecase.ChampionshipService
	oddsService         *usecase.OddsService
	teamService         *usecase.TeamService
	caches              map[string]CacheReporter
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	championshipService *usecase.ChampionshipService,
	oddsService *usecase.OddsService,
	teamService *usecase.TeamService,
	caches map[string]CacheReporter,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		championshipService: championshipService,
		oddsService:         oddsService,
		teamService:         teamService,
		caches:              caches,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeRequest(r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	out := healthDTO{Status: "ok"}
	if loadedAt := h.championshipService.LoadedAt(); !loadedAt.IsZero() {
		out.Loaded = true
		out.LoadedAt = loadedAt.UTC().Format(time.RFC3339)
	}

	if len(h.caches) > 0 {
		names := make([]string, 0, len(h.caches))
		for name := range h.caches {
			names = append(names, name)
		}
		sort.Strings(names)

		out.Caches = make(map[string]cacheStatsDTO, len(names))
		for _, name := range names {
			stats := h.caches[name].Stats()
			out.Caches[name] = cacheStatsDTO{
				Entries:  stats.Entries,
				Hits:     stats.Hits,
				Misses:   stats.Misses,
				InFlight: stats.InFlight,
			}
		}
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	view, err := h.championshipService.Standings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, view))
}

func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRounds")
	defer span.End()

	rounds, err := h.championshipService.Rounds(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list rounds failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rounds)
}

func (h *Handler) GetCurrentRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentRound")
	defer span.End()

	round, err := h.championshipService.CurrentRound(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current round failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(round))
}

func (h *Handler) SelectRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectRound")
	defer span.End()

	var req selectRoundRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	round, err := h.championshipService.SelectRound(ctx, req.Round)
	if err != nil {
		h.logger.WarnContext(ctx, "select round failed", "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(round))
}

func (h *Handler) SimulateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateRound")
	defer span.End()

	outcome, err := h.championshipService.SimulateRound(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "simulate round failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundOutcomeToDTO(ctx, outcome))
}

func (h *Handler) ClearRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearRound")
	defer span.End()

	outcome, err := h.championshipService.ClearRound(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "clear round failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundOutcomeToDTO(ctx, outcome))
}

func (h *Handler) UpdateMatchScore(w http.ResponseWriter, r *http.Request) {
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchScore", attribute.String("match.id", matchID))
	defer span.End()

	var req updateScoreRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	update, err := h.championshipService.UpdateMatchScore(ctx, usecase.UpdateScoreInput{
		MatchID: matchID,
		Field:   req.Field,
		Value:   req.Value,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update match score failed", "match_id", matchID, "field", req.Field, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreUpdateDTO{
		Match:     matchToDTO(update.Match),
		Standings: standingsToDTO(ctx, update.StandingsView),
	})
}

func (h *Handler) ResetChampionship(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetChampionship")
	defer span.End()

	view, err := h.championshipService.Reset(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "reset championship failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, view))
}

func (h *Handler) GetTitleOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTitleOdds")
	defer span.End()

	runs := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("runs")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: runs must be an integer", usecase.ErrInvalidInput))
			return
		}
		runs = v
	}

	projection, err := h.oddsService.Project(ctx, runs)
	if err != nil {
		h.logger.WarnContext(ctx, "project title odds failed", "runs", runs, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, projection)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeamDetails(w http.ResponseWriter, r *http.Request) {
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetails", attribute.String("team.id", teamID))
	defer span.End()
	details, err := h.teamService.GetDetails(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team details failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailsDTO{
		Team:     teamToDTO(details.Team),
		Standing: standingToDTO(details.Standing, details.Change, details.Change.Direction != ""),
		Matches:  matchesToDTO(details.Matches),
	})
}

func roundOutcomeToDTO(ctx context.Context, outcome usecase.RoundOutcome) roundOutcomeDTO {
	return roundOutcomeDTO{
		Round: roundDTO{
			Number:  outcome.Round,
			Matches: matchesToDTO(outcome.Matches),
		},
		Affected:  outcome.Affected,
		Standings: standingsToDTO(ctx, outcome.StandingsView),
	}
}
