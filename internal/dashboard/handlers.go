package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/pkg/currencypkg"
	"github.com/go-petr/pet-vault/pkg/errorspkg"
	"github.com/go-petr/pet-vault/pkg/web"
)

// Handler serves the dashboard API.
type Handler struct {
	registry Registry
}

// NewHandler returns dashboard handler.
func NewHandler(registry Registry) Handler {
	return Handler{registry: registry}
}

type economyView struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Enabled          bool   `json:"enabled"`
	CurrencySingular string `json:"currencySingular"`
	CurrencyPlural   string `json:"currencyPlural"`
	FractionalDigits int    `json:"fractionalDigits"`
	Default          bool   `json:"default"`
}

type balanceView struct {
	UUID      string `json:"uuid"`
	Balance   string `json:"balance"`
	Formatted string `json:"formatted"`
}

func newBalanceView(e domain.PlayerEconomy, b domain.PlayerBalance) balanceView {
	return balanceView{
		UUID:      b.UUID.String(),
		Balance:   currencypkg.PlainString(b.Balance),
		Formatted: e.Format(b.Balance),
	}
}

// ListEconomies handles http request to list the registered economies.
func (h *Handler) ListEconomies(gctx *gin.Context) {
	var defaultID string
	if e, err := h.registry.Default(); err == nil {
		defaultID = e.ID()
	}

	economies := h.registry.All()

	res := make([]economyView, 0, len(economies))
	for _, e := range economies {
		res = append(res, economyView{
			ID:               e.ID(),
			Name:             e.Name(),
			Enabled:          e.Enabled(),
			CurrencySingular: e.CurrencySingular(),
			CurrencyPlural:   e.CurrencyPlural(),
			FractionalDigits: e.FractionalDigits(),
			Default:          e.ID() == defaultID,
		})
	}

	gctx.JSON(http.StatusOK, web.Response{Data: res})
}

type economyURI struct {
	ID string `uri:"id" binding:"required"`
}

type topRequest struct {
	PageID   int `form:"page_id" binding:"required,min=1"`
	PageSize int `form:"page_size" binding:"required,min=1,max=100"`
}

// TopAccounts handles http request to get a page of the leaderboard.
func (h *Handler) TopAccounts(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri economyURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	var req topRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	e, ok := h.lookup(gctx, uri.ID)
	if !ok {
		return
	}

	top, err := e.TopAccounts(ctx, req.PageSize, req.PageID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPagination) {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		zerolog.Ctx(ctx).Error().Err(err).Str("economy", uri.ID).Msg("cannot list top accounts")
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := make([]balanceView, 0, len(top))
	for _, b := range top {
		res = append(res, newBalanceView(e, b))
	}

	gctx.JSON(http.StatusOK, web.Response{Data: res})
}

type accountURI struct {
	ID   string `uri:"id" binding:"required"`
	UUID string `uri:"uuid" binding:"required,uuid"`
}

// Account handles http request to get a single account balance.
func (h *Handler) Account(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	e, ok := h.lookup(gctx, uri.ID)
	if !ok {
		return
	}

	id := uuid.MustParse(uri.UUID)

	balance, err := e.Balance(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		zerolog.Ctx(ctx).Error().Err(err).Str("economy", uri.ID).Msg("cannot get balance")
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		Data: newBalanceView(e, domain.PlayerBalance{UUID: id, Balance: balance}),
	}

	gctx.JSON(http.StatusOK, res)
}

func (h *Handler) lookup(gctx *gin.Context, id string) (domain.PlayerEconomy, bool) {
	e, err := h.registry.Lookup(id)
	if err != nil {
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return nil, false
	}

	return e, true
}

func badRequest(gctx *gin.Context, err error) {
	var (
		ve     validator.ValidationErrors
		errMsg string
	)

	if errors.As(err, &ve) {
		field := ve[0]
		errMsg = field.Field() + web.GetErrorMsg(field)
	} else {
		errMsg = err.Error()
	}

	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})
}
