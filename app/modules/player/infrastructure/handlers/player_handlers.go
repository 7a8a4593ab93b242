package playerhandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	playerservice "github.com/bettercodepaul/Skat/app/modules/player/application"
	playertypes "github.com/bettercodepaul/Skat/app/modules/player/domain/types"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 16

func (h *PlayerHandlers) HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlayerHandlers.ListPlayers")
	defer span.End()

	q := r.URL.Query()

	sort, err := playertypes.ParseSortMode(q.Get("sort"))
	if err != nil {
		badRequest(w, playerservice.FieldSort, "sort must be NAME or SCORE_DESC")
		return
	}
	startIndex, ok := intParam(w, q.Get("startIndex"), playerservice.FieldOffset, 0)
	if !ok {
		return
	}
	pageSize, ok := intParam(w, q.Get("pageSize"), playerservice.FieldPageSize, h.defaultPageSize)
	if !ok {
		return
	}

	page, err := h.service.ListPlayers(ctx, startIndex, pageSize, sort)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, newPlayerListResponse(page))
}

func (h *PlayerHandlers) HandleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlayerHandlers.CreatePlayer")
	defer span.End()

	req, ok := decodeUpsert(w, r)
	if !ok {
		return
	}

	info, err := h.service.CreatePlayer(ctx, *req.FirstName, *req.LastName)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/players/%s", info.ID))
	writeJSON(w, http.StatusCreated, info)
}

func (h *PlayerHandlers) HandleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlayerHandlers.UpdatePlayer")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeUpsert(w, r)
	if !ok {
		return
	}

	info, err := h.service.UpdatePlayer(ctx, id, *req.FirstName, *req.LastName)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *PlayerHandlers) HandleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlayerHandlers.DeletePlayer")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	force := false
	if v := r.URL.Query().Get("forceDeletion"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(w, "forceDeletion", "Invalid value for parameter 'forceDeletion'")
			return
		}
		force = parsed
	}

	if err := h.service.DeletePlayer(ctx, id, force); err != nil {
		h.writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func intParam(w http.ResponseWriter, raw, field string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(w, field, fmt.Sprintf("Invalid value for parameter '%s'", field))
		return 0, false
	}
	return n, true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, playerservice.FieldID, "Invalid value for parameter 'id'")
		return uuid.Nil, false
	}
	return id, true
}

// decodeUpsert reads the request body, which must hold exactly one JSON
// object. Missing names are reported here; blank and oversized names are left
// to the service. Unknown fields are ignored.
func decodeUpsert(w http.ResponseWriter, r *http.Request) (*UpsertPlayerRequest, bool) {
	var req UpsertPlayerRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			badRequest(w, "", "request body is required")
		} else {
			badRequest(w, "", "malformed JSON body")
		}
		return nil, false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		badRequest(w, "", "malformed JSON body")
		return nil, false
	}
	if req.FirstName == nil {
		badRequest(w, playerservice.FieldFirstName, "first_name is required")
		return nil, false
	}
	if req.LastName == nil {
		badRequest(w, playerservice.FieldLastName, "last_name is required")
		return nil, false
	}
	return &req, true
}
