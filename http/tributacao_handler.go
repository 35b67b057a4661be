package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"ir-tributacao/domain"
	"ir-tributacao/service"
)

type TributacaoHandler struct {
	service *service.TaxTableService
	year    func() int
	logger  *slog.Logger
}

func NewTributacaoHandler(
	service *service.TaxTableService,
	year func() int,
	logger *slog.Logger,
) *TributacaoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TributacaoHandler{
		service: service,
		year:    year,
		logger:  logger.With(slog.String("handler", "tributacao")),
	}
}

// TabelaResponse is the body of GET /ir/tabela. Year is omitted when the
// table came from a page of unknown year.
type TabelaResponse struct {
	Year     int             `json:"year,omitempty"`
	Brackets domain.TaxTable `json:"brackets"`
}

// ErrorResponse is the body of failed requests.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Tributacao handles GET /ir/tributacao. It always answers 200; an
// empty array means the table is not available.
func (h *TributacaoHandler) Tributacao(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Tributacao(r.Context()))
}

// Tabela handles GET /ir/tabela and reports failures as 502.
func (h *TributacaoHandler) Tabela(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.Tabela(r.Context())
	if err != nil {
		reqID := middleware.GetReqID(r.Context())
		h.logger.ErrorContext(r.Context(), "failed to build tax table",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()))

		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, ErrorResponse{Error: err.Error(), RequestID: reqID})
		return
	}

	resp := TabelaResponse{Brackets: table}
	if h.year != nil {
		resp.Year = h.year()
	}
	render.JSON(w, r, resp)
}

// Health handles GET /health.
func (h *TributacaoHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
