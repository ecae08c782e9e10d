package httpapi

import (
	"net/http"

	"github.com/riskibarqy/live-match/internal/live"
)

// GetLiveBoard derives every minute with the server clock at request time.
func (h *Handler) GetLiveBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveBoard")
	defer span.End()

	items, err := h.matchService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches for live board failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	now := h.now()
	rows := make([]live.LiveMatch, 0, len(items))
	for _, item := range items {
		rows = append(rows, live.NewLiveMatch(item, now))
	}

	board := liveBoardDTO{
		ComputedAt: now,
		Matches:    make([]liveMatchDTO, 0, len(rows)),
	}
	for _, row := range live.GroupLiveByStatus(rows) {
		board.Matches = append(board.Matches, liveMatchToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}
