package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"PriceSentinel/internal/history"
	"PriceSentinel/internal/model"
	"PriceSentinel/internal/report"
)

// Handler serves price history reads. The store file is re-read on every
// request, so updates written by the tracker show up without a restart.
type Handler struct {
	HistoryPath string
	Now         func() time.Time
}

// NewHandler creates a Handler reading the store at historyPath.
func NewHandler(historyPath string) *Handler {
	return &Handler{HistoryPath: historyPath, Now: time.Now}
}

// load never fails: a missing or corrupt store reads as empty.
func (h *Handler) load() *model.Store {
	today := h.Now().UTC().Format(model.DateLayout)
	store, err := history.Load(h.HistoryPath, today, false)
	if err != nil {
		return model.NewStore(today)
	}
	return store
}

// ListTrends handles GET /api/v1/trends
func (h *Handler) ListTrends(c *gin.Context) {
	store := h.load()
	changes := report.Summarize(store)
	c.JSON(http.StatusOK, gin.H{
		"changes":     changes,
		"count":       len(changes),
		"lastUpdated": store.Metadata.LastUpdated,
	})
}

// GetTrend handles GET /api/v1/models/:id/trend
// An unknown model or a model without a trend yields a null trend, not an error.
func (h *Handler) GetTrend(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"modelId": id,
		"trend":   h.load().Trend(id),
	})
}

// GetHistory handles GET /api/v1/models/:id/history
func (h *Handler) GetHistory(c *gin.Context) {
	id := c.Param("id")
	mh, ok := h.load().Models[id]
	if !ok || mh == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: ErrorDetail{
			Code:    "MODEL_NOT_FOUND",
			Message: "No price history for " + id,
		}})
		return
	}

	entries := mh.History
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{
				Code:    "INVALID_PARAM",
				Message: "limit must be a positive integer",
			}})
			return
		}
		if len(entries) > limit {
			entries = entries[len(entries)-limit:]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"modelId":  id,
		"name":     mh.Name,
		"provider": mh.Provider,
		"history":  entries,
		"trend":    mh.Trend,
	})
}
