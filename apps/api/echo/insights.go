package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/studyplanner/core/notification"
	"github.com/trezcool/studyplanner/core/stats"
)

type (
	insightsApi struct {
		alerts *notification.Engine
		stats  *stats.Engine
	}

	NotificationsResponse struct {
		Count        int                  `json:"count"`
		HasImportant bool                 `json:"has_important"`
		Summary      string               `json:"summary"`
		Alerts       []notification.Alert `json:"alerts"`
	}

	SummaryResponse struct {
		Summary string `json:"summary"`
	}
)

func registerInsightsAPI(g *echo.Group, deps *Deps) {
	api := insightsApi{alerts: deps.Alerts, stats: deps.Stats}

	g.GET("/notifications", api.notifications)
	g.GET("/notifications/summary", api.notificationSummary)
	g.GET("/stats", api.statistics)
}

func (api *insightsApi) notifications(ctx echo.Context) error {
	important, err := boolParam(ctx, "important")
	if err != nil {
		return err
	}

	alerts := api.alerts.Check()
	summary := notification.Summarize(alerts)
	importantAlerts := notification.FilterImportant(alerts)
	if important {
		alerts = importantAlerts
	}
	return ctx.JSON(http.StatusOK, NotificationsResponse{
		Count:        len(alerts),
		HasImportant: len(importantAlerts) > 0,
		Summary:      summary,
		Alerts:       alerts,
	})
}

func (api *insightsApi) notificationSummary(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, SummaryResponse{Summary: api.alerts.Summary()})
}

func (api *insightsApi) statistics(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.stats.Report())
}
