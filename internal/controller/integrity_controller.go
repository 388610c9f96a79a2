package controller

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"integrity-gateway/internal/ingest"
	"integrity-gateway/internal/middleware"
	"integrity-gateway/internal/model"
	"integrity-gateway/internal/service"
	"integrity-gateway/internal/utils"
	"integrity-gateway/pkg/response"
)

// RunRequest captures the non-file parameters of an integrity run.
type RunRequest struct {
	IncludeDatabase bool `json:"include_database" form:"include_database"`
	FileCount       int  `json:"-" validate:"min=0,max=64"`
}

type IntegrityController struct {
	integrityService *service.IntegrityService
	ingestor         *ingest.BucketIngestor
	maxUploadBytes   int64
	validator        *validator.Validate
}

// NewIntegrityController creates the controller. ingestor may be nil when
// bucket ingestion is disabled.
func NewIntegrityController(integrityService *service.IntegrityService, ingestor *ingest.BucketIngestor, maxUploadBytes int64) *IntegrityController {
	return &IntegrityController{
		integrityService: integrityService,
		ingestor:         ingestor,
		maxUploadBytes:   maxUploadBytes,
		validator:        validator.New(),
	}
}

// RunIntegrity godoc
// @Summary Run the integrity pipeline over uploaded files
// @Description Accepts a multipart form with one or more files plus an
// optional include_database flag. Every file flows through the format
// dispatcher; unsupported formats are ignored and malformed files are
// skipped, never failing the run. The response carries the metrics record
// and per-source skip reports.
// @Tags integrity
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} response.StandardResponse{data=service.RunResult}
// @Failure 400 {object} response.StandardResponse
// @Failure 413 {object} response.StandardResponse
// @Failure 422 {object} response.StandardResponse
// @Router /api/v1/integrity/run [post]
func (ic *IntegrityController) RunIntegrity(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse(
			utils.ErrCodeInvalidRequest,
			"Invalid multipart form: "+err.Error(),
			"",
			correlationID,
		))
		return
	}

	includeDatabase, _ := strconv.ParseBool(c.PostForm("include_database"))
	files := form.File["files"]

	req := RunRequest{
		IncludeDatabase: includeDatabase,
		FileCount:       len(files),
	}
	if err := ic.validator.Struct(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, response.ValidationErrorResponse(err.Error(), correlationID))
		return
	}

	sources := make([]model.Source, 0, len(files))
	for _, fileHeader := range files {
		if ic.maxUploadBytes > 0 && fileHeader.Size > ic.maxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponse(
				utils.ErrCodeUploadTooLarge,
				"Uploaded file exceeds the size limit: "+fileHeader.Filename,
				"",
				correlationID,
			))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse(
				utils.ErrCodeInvalidRequest,
				"Failed to open uploaded file: "+fileHeader.Filename,
				err.Error(),
				correlationID,
			))
			return
		}
		payload, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse(
				utils.ErrCodeInvalidRequest,
				"Failed to read uploaded file: "+fileHeader.Filename,
				err.Error(),
				correlationID,
			))
			return
		}

		sources = append(sources, model.NewFileSource(fileHeader.Filename, payload))
	}

	result := ic.integrityService.Run(c.Request.Context(), sources, includeDatabase)
	c.JSON(http.StatusOK, response.SuccessResponse(result, correlationID))
}

// RunBucket godoc
// @Summary Run the integrity pipeline over the configured bucket
// @Description Lists the configured object-storage bucket and runs the same
// pipeline over its objects.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} response.StandardResponse{data=service.RunResult}
// @Failure 404 {object} response.StandardResponse
// @Failure 502 {object} response.StandardResponse
// @Router /api/v1/integrity/run-bucket [post]
func (ic *IntegrityController) RunBucket(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)

	if ic.ingestor == nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse(
			utils.ErrCodeNotFound,
			"Bucket ingestion is not configured",
			"",
			correlationID,
		))
		return
	}

	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, response.ErrorResponse(
			utils.ErrCodeInvalidRequest,
			"Invalid request body: "+err.Error(),
			"",
			correlationID,
		))
		return
	}

	sources, err := ic.ingestor.ListSources(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, response.ErrorResponse(
			utils.ErrCodeIngestFailed,
			"Failed to ingest bucket contents",
			err.Error(),
			correlationID,
		))
		return
	}

	result := ic.integrityService.Run(c.Request.Context(), sources, req.IncludeDatabase)
	c.JSON(http.StatusOK, response.SuccessResponse(result, correlationID))
}

// GetSupportedFormats godoc
// @Summary List supported source kinds
// @Tags integrity
// @Produce json
// @Success 200 {object} response.StandardResponse
// @Router /api/v1/integrity/formats [get]
func (ic *IntegrityController) GetSupportedFormats(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	c.JSON(http.StatusOK, response.SuccessResponse(gin.H{
		"kinds": ic.integrityService.SupportedKinds(),
	}, correlationID))
}
