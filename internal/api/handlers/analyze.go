package handlers

import (
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"stylegrid/internal/analysis"
	"stylegrid/internal/api/models"
	"stylegrid/internal/config"
	"stylegrid/internal/data"
	"stylegrid/internal/model"
	"stylegrid/internal/stylebox"
)

// AnalyzeHandler runs the load → map → analyze pipeline for API requests.
type AnalyzeHandler struct {
	cfg    *config.Config
	client *data.LibraryClient
	cache  *data.TableCache
	mapper *stylebox.Mapper

	snapMu    sync.RWMutex
	snapshots map[string]snapshot
}

type snapshot struct {
	resp      *models.AnalyzeResponse
	expiresAt time.Time
}

// NewAnalyzeHandler creates the handler and its table cache.
func NewAnalyzeHandler(cfg *config.Config) *AnalyzeHandler {
	return &AnalyzeHandler{
		cfg:       cfg,
		client:    data.NewLibraryClient(cfg.Data.LibraryBaseURL),
		cache:     data.NewTableCache(cfg.Data.CacheTTL),
		mapper:    stylebox.New(),
		snapshots: map[string]snapshot{},
	}
}

// Analyze handles POST /api/v1/analyze.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	resp, err := h.run(req, nil)
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnalyzeUpload handles POST /api/v1/analyze/upload: a multipart CSV upload
// replaces the portfolio table; the remaining tables go through the normal
// chain. Form fields mirror the JSON request.
func (h *AnalyzeHandler) AnalyzeUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "multipart field \"file\" is required",
			},
		})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_UPLOAD",
				Message: err.Error(),
			},
		})
		return
	}

	var req models.AnalyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	portfolios, _ := data.DatasetByID(data.DatasetPortfolios5x5)
	upload := &data.UploadSource{
		Name:     header.Filename,
		Data:     raw,
		Keywords: portfolios.Keywords,
	}

	resp, err := h.run(req, upload)
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSnapshot handles GET /api/v1/analyze/:id. Snapshots live as long as the
// table cache TTL.
func (h *AnalyzeHandler) GetSnapshot(c *gin.Context) {
	id := c.Param("id")

	h.snapMu.RLock()
	snap, ok := h.snapshots[id]
	h.snapMu.RUnlock()

	if !ok || time.Now().After(snap.expiresAt) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SNAPSHOT_NOT_FOUND",
				Message: "unknown or expired analysis id",
			},
		})
		return
	}
	c.JSON(http.StatusOK, snap.resp)
}

// run executes the pipeline once. upload, when non-nil, takes priority over
// the portfolio dataset's normal source chain.
func (h *AnalyzeHandler) run(req models.AnalyzeRequest, upload *data.UploadSource) (*models.AnalyzeResponse, error) {
	params := config.MergeAnalysis(h.cfg.Analysis, config.AnalysisConfig{
		StartYear: req.StartYear,
		Capital:   req.Capital,
	})
	if req.SharpeExcess != nil {
		params.SharpeExcess = *req.SharpeExcess
	}

	tables, err := h.loadTables(upload)
	if err != nil {
		return nil, err
	}

	opts := stylebox.Options{
		StartYear: params.StartYear,
		Labels:    req.Labels,
	}
	if h.cfg.Fallback.Policy == "substitute" {
		opts.Fallback = stylebox.FallbackSubstitute
		opts.DefaultColumn = h.cfg.Fallback.DefaultColumn
	}

	set, labelErrs, err := h.mapper.Build(tables, opts)
	if err != nil {
		return nil, err
	}

	aopts := analysis.Options{ExcessReturns: params.SharpeExcess}
	if params.SharpeExcess {
		if rf, ok := h.mapper.RiskFreeSeries(tables, opts); ok {
			aopts.RiskFree = rf
		}
	}

	rows := analysis.RankByCAGR(analysis.ComputeSet(set, aopts))

	resp := &models.AnalyzeResponse{
		ID:               uuid.NewString(),
		DataSource:       models.DataSourceReal,
		SharpeConvention: string(aopts.Convention()),
		StartYear:        params.StartYear,
		Capital:          params.Capital,
		Metrics:          rows,
	}
	if set.Synthetic {
		resp.DataSource = models.DataSourceSynthetic
	}
	if len(set.Labels) > 0 {
		resp.Months = set.Series[set.Labels[0]].Len()
	}
	if len(labelErrs) > 0 {
		resp.Omitted = map[string]string{}
		for label, lerr := range labelErrs {
			resp.Omitted[label] = lerr.Error()
		}
	}
	if req.IncludeWealth {
		resp.Wealth = map[string][]model.WealthPoint{}
		for _, label := range set.Labels {
			resp.Wealth[label] = model.WealthPath(set.Series[label], params.Capital)
		}
	}

	h.storeSnapshot(resp)
	return resp, nil
}

// loadTables resolves the three dataset tables. Portfolios and factors are
// required; momentum is optional and degrades to omission.
func (h *AnalyzeHandler) loadTables(upload *data.UploadSource) (stylebox.Tables, error) {
	var tables stylebox.Tables

	portfolios, _ := data.DatasetByID(data.DatasetPortfolios5x5)
	momentum, _ := data.DatasetByID(data.DatasetMomentum)
	factors, _ := data.DatasetByID(data.DatasetFiveFactors)

	if upload != nil {
		table, err := upload.Fetch()
		if err != nil {
			return tables, err
		}
		tables.Portfolios = table
	} else {
		table, err := h.load(portfolios)
		if err != nil {
			return tables, err
		}
		tables.Portfolios = table
	}

	factorTable, err := h.load(factors)
	if err != nil {
		return tables, err
	}
	tables.Factors = factorTable

	// Momentum is the one optional dataset: losing it drops a series, not
	// the dashboard.
	momTable, err := h.load(momentum)
	if err != nil {
		log.Warn().Err(err).Msg("momentum dataset unavailable, series will be omitted")
	} else {
		tables.Momentum = momTable
	}

	return tables, nil
}

func (h *AnalyzeHandler) load(d data.Dataset) (*model.RawTable, error) {
	loader := &data.Loader{Cache: h.cache}
	if h.cfg.Data.AllowSynthetic {
		loader.Fallback = data.SyntheticFor(d)
	}
	return loader.Load(data.SourcesFor(d, h.cfg.Data.Dir, h.client)...)
}

func (h *AnalyzeHandler) storeSnapshot(resp *models.AnalyzeResponse) {
	ttl := h.cfg.Data.CacheTTL
	if ttl <= 0 {
		ttl = data.DefaultCacheTTL
	}
	h.snapMu.Lock()
	defer h.snapMu.Unlock()

	now := time.Now()
	for id, snap := range h.snapshots {
		if now.After(snap.expiresAt) {
			delete(h.snapshots, id)
		}
	}
	h.snapshots[resp.ID] = snapshot{resp: resp, expiresAt: now.Add(ttl)}
}

// respondPipelineError maps pipeline failures onto the error envelope.
func respondPipelineError(c *gin.Context, err error) {
	var srcErr *model.SourceError
	if errors.As(err, &srcErr) {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SOURCE_UNAVAILABLE",
				Message: srcErr.Error(),
				Details: map[string]interface{}{
					"source":      srcErr.Source,
					"status_code": srcErr.StatusCode,
				},
			},
		})
		return
	}

	var colErr *model.MissingColumnError
	if errors.As(err, &colErr) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "MISSING_REQUIRED_COLUMN",
				Message: colErr.Error(),
				Details: map[string]interface{}{
					"label":      colErr.Label,
					"candidates": colErr.Candidates,
				},
			},
		})
		return
	}

	if errors.Is(err, model.ErrHeaderNotFound) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "HEADER_NOT_FOUND",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "ANALYSIS_ERROR",
			Message: err.Error(),
		},
	})
}
