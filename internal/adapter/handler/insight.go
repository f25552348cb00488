package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/insight"
	"github.com/johnquangdev/meeting-insights/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	aiuse "github.com/johnquangdev/meeting-insights/internal/usecase/ai"
	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/johnquangdev/meeting-insights/pkg/taskcontext"
	pkgvalidator "github.com/johnquangdev/meeting-insights/pkg/validator"
)

// Insight handles the transcript insight and Q&A endpoints
type Insight struct {
	svc    aiuse.Service
	logger *zap.Logger
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(svc aiuse.Service, logger *zap.Logger) *Insight {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Insight{svc: svc, logger: logger}
}

// Extract handles POST /v1/insights
// @Summary      Extract meeting insights
// @Description  Produces a summary, key decisions, action items with owners, and the overall sentiment of a transcript
// @Tags         Insights
// @Accept       json
// @Produce      json
// @Param        request  body      insight.InsightsRequest   true  "Meeting transcript"
// @Success      200      {object}  insight.InsightsResponse  "Insight bundle"
// @Failure      400      {object}  insight.ErrorResponse     "Empty transcript or invalid JSON"
// @Failure      413      {object}  insight.ErrorResponse     "Transcript exceeds the model input budget"
// @Failure      502      {object}  insight.ErrorResponse     "Model output could not be parsed"
// @Failure      503      {object}  insight.ErrorResponse     "Model backend unavailable"
// @Failure      504      {object}  insight.ErrorResponse     "Model backend timed out"
// @Router       /v1/insights [post]
func (h *Insight) Extract(c echo.Context) error {
	var req insight.InsightsRequest
	if err := h.bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := taskcontext.WithRequest(c.Request().Context(), getRequestID(c), string(config.CapabilityInsights))
	bundle, err := h.svc.Extract(ctx, entities.NewTranscript(req.Transcript))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToInsightsResponse(bundle))
}

// Ask handles POST /v1/qna
// @Summary      Answer a question about a meeting
// @Description  Answers a question using only the given transcript; topics the transcript does not cover get a fixed reply
// @Tags         Insights
// @Accept       json
// @Produce      json
// @Param        request  body      insight.QnARequest     true  "Transcript and question"
// @Success      200      {object}  insight.QnAResponse    "Answer"
// @Failure      400      {object}  insight.ErrorResponse  "Empty transcript, empty question, or invalid JSON"
// @Failure      413      {object}  insight.ErrorResponse  "Transcript exceeds the model input budget"
// @Failure      502      {object}  insight.ErrorResponse  "Model returned no answer"
// @Failure      503      {object}  insight.ErrorResponse  "Model backend unavailable"
// @Failure      504      {object}  insight.ErrorResponse  "Model backend timed out"
// @Router       /v1/qna [post]
func (h *Insight) Ask(c echo.Context) error {
	var req insight.QnARequest
	if err := h.bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := taskcontext.WithRequest(c.Request().Context(), getRequestID(c), string(config.CapabilityQnA))
	res, err := h.svc.Answer(ctx, entities.NewTranscript(req.Transcript), req.Question)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToQnAResponse(res))
}

// bind decodes and validates the request body, mapping blank fields onto their domain errors
func (h *Insight) bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if stdErrors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return errors.ErrRequestTooLarge(err)
		}
		return errors.ErrInvalidPayload(err)
	}
	if err := c.Validate(req); err != nil {
		field, _ := pkgvalidator.FirstInvalidField(err)
		switch field {
		case "transcript":
			return entities.ErrEmptyTranscript
		case "question":
			return entities.ErrEmptyQuestion
		default:
			return errors.ErrInvalidPayload(err)
		}
	}
	return nil
}
