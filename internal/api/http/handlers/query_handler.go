package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-assistant/internal/api/dto"
	"github.com/spec-kit/employee-assistant/internal/service"
	apperrors "github.com/spec-kit/employee-assistant/pkg/util/errorutil"
)

const maxQueryLength = 1000

// QueryHandler exposes the natural-language query endpoint.
type QueryHandler struct {
	assistant *service.Assistant
}

// NewQueryHandler constructs handler.
func NewQueryHandler(assistant *service.Assistant) *QueryHandler {
	return &QueryHandler{assistant: assistant}
}

// Ask handles POST /api/v1/query.
func (h *QueryHandler) Ask(c *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return apperrors.NewValidationError("query required", nil)
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		return apperrors.NewValidationError("query too long", map[string]any{"max_length": maxQueryLength})
	}

	answer := h.assistant.Answer(c.UserContext(), query)

	intents := make([]string, 0, len(answer.Analysis.AllIntents))
	for _, intent := range answer.Analysis.AllIntents {
		intents = append(intents, string(intent))
	}
	names := answer.Analysis.ExtractedNames
	if names == nil {
		names = []string{}
	}

	return c.JSON(fiber.Map{
		"data": dto.QueryResponse{
			Answer:        answer.Text,
			PrimaryIntent: string(answer.Analysis.PrimaryIntent),
			Intents:       intents,
			Names:         names,
		},
	})
}
