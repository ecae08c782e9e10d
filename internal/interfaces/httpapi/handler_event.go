package httpapi

import (
	"net/http"

	"github.com/riskibarqy/live-match/internal/usecase"
)

func (h *Handler) AppendEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AppendEvent")
	defer span.End()

	matchID, err := parseMatchID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req appendEventRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := req.toInput()
	event, err := h.eventService.Append(ctx, matchID, input.EventType, input.Data)
	if err != nil {
		h.logger.WarnContext(ctx, "append match event failed", "match_id", matchID, "event_type", req.EventType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(event))
}

// AppendEventBatch answers 200 even when some items fail; each row carries
// its own outcome.
func (h *Handler) AppendEventBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AppendEventBatch")
	defer span.End()

	matchID, err := parseMatchID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req appendEventBatchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.EventInput, 0, len(req.Events))
	for _, item := range req.Events {
		inputs = append(inputs, item.toInput())
	}

	results, err := h.eventService.AppendBatch(ctx, matchID, inputs)
	if err != nil {
		h.logger.ErrorContext(ctx, "append match event batch failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]batchResultDTO, 0, len(results))
	for _, row := range results {
		item := batchResultDTO{Index: row.Index}
		if row.Err != nil {
			item.Error = row.Err.Error()
		} else {
			event := eventToDTO(row.Event)
			item.Event = &event
		}
		out = append(out, item)
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListMatchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchEvents")
	defer span.End()

	matchID, err := parseMatchID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.eventService.ListEvents(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match events failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventsToDTO(events))
}
