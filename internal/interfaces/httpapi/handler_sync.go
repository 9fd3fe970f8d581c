package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-cycling/internal/usecase"
)

const maxSyncRequestBytes = 4 << 10

type syncYearRequest struct {
	Year int `json:"year" validate:"omitempty,gte=1900,lte=2100"`
}

func (h *Handler) RunSeedSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSeedSync")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: race sync is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	report, err := h.syncService.Sync(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run seed sync failed", "error", err, "failed_count", report.FailedCount)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RunRaceCalendarSync(w http.ResponseWriter, r *http.Request) {
	h.runYearSync(w, r, "httpapi.Handler.RunRaceCalendarSync", usecase.SyncOperationRaces)
}

func (h *Handler) RunRaceResultsSync(w http.ResponseWriter, r *http.Request) {
	h.runYearSync(w, r, "httpapi.Handler.RunRaceResultsSync", usecase.SyncOperationResults)
}

func (h *Handler) RunStartlistSync(w http.ResponseWriter, r *http.Request) {
	h.runYearSync(w, r, "httpapi.Handler.RunStartlistSync", usecase.SyncOperationStartlists)
}

func (h *Handler) runYearSync(w http.ResponseWriter, r *http.Request, spanName, operation string) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: race sync is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeSyncYearRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var report usecase.SyncReport
	switch operation {
	case usecase.SyncOperationRaces:
		report, err = h.syncService.SyncRemoteRaces(ctx, req.Year)
	case usecase.SyncOperationResults:
		report, err = h.syncService.SyncRaceResults(ctx, req.Year)
	case usecase.SyncOperationStartlists:
		report, err = h.syncService.SyncStartlists(ctx, req.Year)
	default:
		err = fmt.Errorf("unknown sync operation %q", operation)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "run sync failed", "operation", operation, "year", req.Year, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "sync completed",
		"operation", report.Operation,
		"year", report.Year,
		"item_count", report.ItemCount,
		"failed_count", report.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, report)
}

// decodeSyncYearRequest accepts an empty body; year 0 means the configured season.
func decodeSyncYearRequest(r *http.Request) (syncYearRequest, error) {
	if r.Body == nil {
		return syncYearRequest{}, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxSyncRequestBytes+1))
	if err != nil {
		return syncYearRequest{}, fmt.Errorf("%w: read payload: %v", usecase.ErrInvalidInput, err)
	}
	if len(raw) > maxSyncRequestBytes {
		return syncYearRequest{}, fmt.Errorf("%w: payload too large", usecase.ErrInvalidInput)
	}
	if raw = bytes.TrimSpace(raw); len(raw) == 0 {
		return syncYearRequest{}, nil
	}

	var req syncYearRequest
	if err := sonic.Unmarshal(raw, &req); err != nil {
		return syncYearRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
