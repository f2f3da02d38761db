package routes

import (
	"net/http"
	"time"

	"github.com/transparencia-lab/politigraph/backend/internal/server/middleware"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// listParams are shared by every entity list handler. Limits above the
// per-kind ceiling are truncated by the network service, never rejected.
type listParams struct {
	Limit  int32 `query:"limit" validate:"omitempty,gte=0"`
	Offset int32 `query:"offset" validate:"omitempty,gte=0"`
}

const defaultListLimit int32 = 100

func bindListParams(c echo.Context) (listParams, error) {
	params := listParams{Limit: defaultListLimit}
	if err := c.Bind(&params); err != nil {
		return params, err
	}
	if err := c.Validate(&params); err != nil {
		return params, err
	}
	if params.Limit == 0 {
		params.Limit = defaultListLimit
	}
	return params, nil
}

func GetPoliticiansHandler(c echo.Context) error {
	start := time.Now()

	params, err := bindListParams(c)
	if err != nil {
		return fail(c, start, http.StatusBadRequest, "Invalid request params")
	}

	ctx := c.Request().Context()
	svc := c.(*middleware.AppContext).App.Network

	politicians, err := svc.ListPoliticians(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.Error("[Routes] Failed to list politicians", "err", err)
		return fail(c, start, http.StatusInternalServerError, "Failed to list politicians")
	}

	return okCount(c, start, politicians, len(politicians))
}

func GetPartiesHandler(c echo.Context) error {
	start := time.Now()

	params, err := bindListParams(c)
	if err != nil {
		return fail(c, start, http.StatusBadRequest, "Invalid request params")
	}

	ctx := c.Request().Context()
	svc := c.(*middleware.AppContext).App.Network

	parties, err := svc.ListParties(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.Error("[Routes] Failed to list parties", "err", err)
		return fail(c, start, http.StatusInternalServerError, "Failed to list parties")
	}

	return okCount(c, start, parties, len(parties))
}

func GetCompaniesHandler(c echo.Context) error {
	start := time.Now()

	params, err := bindListParams(c)
	if err != nil {
		return fail(c, start, http.StatusBadRequest, "Invalid request params")
	}

	ctx := c.Request().Context()
	svc := c.(*middleware.AppContext).App.Network

	companies, err := svc.ListCompanies(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.Error("[Routes] Failed to list companies", "err", err)
		return fail(c, start, http.StatusInternalServerError, "Failed to list companies")
	}

	return okCount(c, start, companies, len(companies))
}

func GetSanctionsHandler(c echo.Context) error {
	start := time.Now()

	params, err := bindListParams(c)
	if err != nil {
		return fail(c, start, http.StatusBadRequest, "Invalid request params")
	}

	ctx := c.Request().Context()
	svc := c.(*middleware.AppContext).App.Network

	sanctions, err := svc.ListSanctions(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.Error("[Routes] Failed to list sanctions", "err", err)
		return fail(c, start, http.StatusInternalServerError, "Failed to list sanctions")
	}

	return okCount(c, start, sanctions, len(sanctions))
}
