package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/idxpulse/idxpulse/internal/blob"
	"github.com/idxpulse/idxpulse/internal/domain/dto"
	"github.com/idxpulse/idxpulse/internal/service"
)

const contentTypeCSV = "text/csv"

// Handler maps HTTP requests onto the artifact and job services.
//
// Responsibilities:
//   - Validate path and query parameters
//   - Translate service errors into status codes (bad input 400, missing
//     artifact 404, everything else 500)
//   - Serve derived CSV artifacts verbatim and job records as JSON
type Handler struct {
	artifacts service.ArtifactService
	jobs      service.JobService
}

func NewHandler(artifacts service.ArtifactService, jobs service.JobService) *Handler {
	return &Handler{artifacts: artifacts, jobs: jobs}
}

// GetDates handles GET /api/v1/dates requests.
//
// GetDates godoc
// @Summary      List available artifact dates
// @Description  Returns the date suffixes available for an artifact family, newest first
// @Tags         artifacts
// @Produce      json
// @Param        family  query     string  true  "Artifact family"  Enums(bid_ask, broker_summary, top_broker)
// @Success      200     {object}  map[string][]string    "Success"
// @Failure      400     {object}  dto.ErrorResponse      "Bad Request"
// @Failure      500     {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/dates [get]
func (h *Handler) GetDates(c *gin.Context) {
	dates, err := h.artifacts.ListDates(c.Request.Context(), c.Query("family"))
	if err != nil {
		h.writeError(c, err, "failed to list dates")
		return
	}
	if dates == nil {
		dates = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// GetBidAsk handles GET /api/v1/bid-ask/:date/:stock requests. The stock
// ALL_STOCK selects the consolidated footprint.
//
// GetBidAsk godoc
// @Summary      Get bid/ask footprint CSV
// @Description  Returns the per-stock bid/ask price-level CSV for one date; stock ALL_STOCK returns the consolidated file
// @Tags         artifacts
// @Produce      plain
// @Param        date   path      string  true  "Date in YYYYMMDD"  example(20240102)
// @Param        stock  path      string  true  "Stock code or ALL_STOCK"  example(BBCA)
// @Success      200    {string}  string             "CSV content"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404    {object}  dto.ErrorResponse  "Not Found"
// @Failure      500    {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/bid-ask/{date}/{stock} [get]
func (h *Handler) GetBidAsk(c *gin.Context) {
	content, err := h.artifacts.BidAsk(c.Request.Context(), c.Param("date"), c.Param("stock"))
	if err != nil {
		h.writeError(c, err, "failed to fetch bid/ask artifact")
		return
	}
	c.Data(http.StatusOK, contentTypeCSV, []byte(content))
}

// GetBrokerSummary handles GET /api/v1/broker-summary/:date and
// GET /api/v1/broker-summary/:date/:emiten requests.
//
// GetBrokerSummary godoc
// @Summary      Get broker summary CSV
// @Description  Returns the per-emiten broker summary for one date, or the detailed cross-stock summary when no emiten is given
// @Tags         artifacts
// @Produce      plain
// @Param        date    path      string  true   "Date in YYYYMMDD"  example(20240102)
// @Param        emiten  path      string  false  "Emiten code"       example(BBCA)
// @Success      200     {string}  string             "CSV content"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse  "Not Found"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/broker-summary/{date}/{emiten} [get]
func (h *Handler) GetBrokerSummary(c *gin.Context) {
	content, err := h.artifacts.BrokerSummary(c.Request.Context(), c.Param("date"), c.Param("emiten"))
	if err != nil {
		h.writeError(c, err, "failed to fetch broker summary artifact")
		return
	}
	c.Data(http.StatusOK, contentTypeCSV, []byte(content))
}

// GetBrokerTransaction handles GET /api/v1/broker-transaction/:date/:broker.
//
// GetBrokerTransaction godoc
// @Summary      Get broker transaction CSV
// @Description  Returns the per-broker transaction pivot for one date
// @Tags         artifacts
// @Produce      plain
// @Param        date    path      string  true  "Date in YYYYMMDD"  example(20240102)
// @Param        broker  path      string  true  "Broker code"       example(AK)
// @Success      200     {string}  string             "CSV content"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse  "Not Found"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/broker-transaction/{date}/{broker} [get]
func (h *Handler) GetBrokerTransaction(c *gin.Context) {
	content, err := h.artifacts.BrokerTransaction(c.Request.Context(), c.Param("date"), c.Param("broker"))
	if err != nil {
		h.writeError(c, err, "failed to fetch broker transaction artifact")
		return
	}
	c.Data(http.StatusOK, contentTypeCSV, []byte(content))
}

// GetTopBroker handles GET /api/v1/top-broker/:date.
//
// GetTopBroker godoc
// @Summary      Get top broker ranking CSV
// @Description  Returns the value-ranked broker activity CSV for one date
// @Tags         artifacts
// @Produce      plain
// @Param        date  path      string  true  "Date in YYYYMMDD"  example(20240102)
// @Success      200   {string}  string             "CSV content"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404   {object}  dto.ErrorResponse  "Not Found"
// @Failure      500   {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/top-broker/{date} [get]
func (h *Handler) GetTopBroker(c *gin.Context) {
	content, err := h.artifacts.TopBroker(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.writeError(c, err, "failed to fetch top broker artifact")
		return
	}
	c.Data(http.StatusOK, contentTypeCSV, []byte(content))
}

// startJobRequest is the body of POST /api/v1/jobs.
type startJobRequest struct {
	Pipeline string `json:"pipeline" binding:"required" example:"bid_ask"`
	Force    bool   `json:"force"`
}

// StartJob handles POST /api/v1/jobs requests.
//
// StartJob godoc
// @Summary      Start a batch run
// @Description  Launches the named pipeline (bid_ask, broker_summary or all) asynchronously and returns a job ID for polling
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        request  body      startJobRequest  true  "Pipeline selection"
// @Success      202      {object}  dto.JobAcceptedResponse  "Accepted"
// @Failure      400      {object}  dto.ErrorResponse        "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/jobs [post]
func (h *Handler) StartJob(c *gin.Context) {
	var req startJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}

	jobID, err := h.jobs.StartJob(c.Request.Context(), req.Pipeline, req.Force)
	if err != nil {
		h.writeError(c, err, "failed to start job")
		return
	}

	c.JSON(http.StatusAccepted, dto.JobAcceptedResponse{
		JobID:    jobID,
		Pipeline: req.Pipeline,
		Status:   "running",
	})
}

// GetJob handles GET /api/v1/jobs/:id requests.
//
// GetJob godoc
// @Summary      Get job status
// @Description  Returns the job-log record for one batch run
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  dto.JobStatusResponse  "Success"
// @Failure      404  {object}  dto.ErrorResponse      "Not Found"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/jobs/{id} [get]
func (h *Handler) GetJob(c *gin.Context) {
	job, err := h.jobs.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch job")
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("job not found", nil))
		return
	}

	c.JSON(http.StatusOK, dto.JobStatusResponse{
		JobID:              job.ID,
		Pipeline:           job.Pipeline,
		Status:             job.Status,
		ProgressPercentage: job.ProgressPercentage,
		CurrentProcessing:  job.CurrentProcessing,
		Message:            job.Message,
		StartedAt:          job.StartedAt,
		UpdatedAt:          job.UpdatedAt,
	})
}

// writeError maps a service error onto the right status code and body.
func (h *Handler) writeError(c *gin.Context, err error, message string) {
	var bad service.ErrBadRequest
	switch {
	case errors.As(err, &bad):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(bad.Reason, nil))
	case blob.IsNotFound(err):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("artifact not found", nil))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(message, err))
	}
}
