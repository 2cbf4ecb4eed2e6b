package echoapi

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/core"
	"github.com/trezcool/studyplanner/core/activity"
	"github.com/trezcool/studyplanner/storage/export"
)

const exportBaseName = "schedule"

type exportApi struct {
	schedule *activity.Schedule
}

func registerExportAPI(g *echo.Group, deps *Deps) {
	api := exportApi{schedule: deps.Schedule}
	g.GET("/export/:format", api.export)
}

func (api *exportApi) export(ctx echo.Context) error {
	format, err := export.ParseFormat(ctx.Param("format"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "format", Error: err.Error()})
	}

	var buf bytes.Buffer
	if err = export.Write(&buf, format, api.schedule.All()); err != nil {
		return errors.Wrapf(err, "exporting %s", format)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+format.Filename(exportBaseName)+`"`)
	return ctx.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
