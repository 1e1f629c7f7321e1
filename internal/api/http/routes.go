package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/air-quality-dashboard/internal/airquality"
	"github.com/i474232898/air-quality-dashboard/internal/views"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *airquality.Service) {
	app.Get("/", func(c *fiber.Ctx) error {
		data, err := dashboardData(c, service)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := views.RenderDashboard(&buf, data); err != nil {
			slog.Error("dashboard render failed", "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	app.Get("/partials/charts", func(c *fiber.Ctx) error {
		data, err := dashboardData(c, service)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := views.RenderCharts(&buf, data); err != nil {
			slog.Error("charts partial render failed", "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render charts")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	v1 := app.Group("/api/v1")

	v1.Get("/dataset", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"dataset": service.Info(),
			"domain":  service.Domain(),
		})
	})

	v1.Get("/dataset/history", func(c *fiber.Ctx) error {
		return c.JSON(service.History())
	})

	v1.Post("/dataset/reload", func(c *fiber.Ctx) error {
		if err := service.Load(c.UserContext()); err != nil {
			if errors.Is(err, airquality.ErrDatasetNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "data file not found")
			}
			return fiber.NewError(fiber.StatusServiceUnavailable, "dataset reload failed: "+err.Error())
		}
		return c.JSON(service.Info())
	})

	v1.Get("/bounds", func(c *fiber.Ctx) error {
		return c.JSON(service.Domain())
	})

	v1.Get("/charts", func(c *fiber.Ctx) error {
		bounds, err := parseBounds(c, service.Domain())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(service.Charts(bounds))
	})

	v1.Get("/charts/:id", func(c *fiber.Ctx) error {
		q := chartQuery{
			ID:     c.Params("id"),
			Format: strings.ToLower(c.Query("format", "json")),
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		bounds, err := parseBounds(c, service.Domain())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		chart, err := service.Chart(q.ID, bounds)
		if err != nil {
			if errors.Is(err, airquality.ErrUnknownChart) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to compute chart")
		}

		if q.Format == "csv" {
			var buf bytes.Buffer
			if err := airquality.WriteChartCSV(&buf, chart); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to encode csv")
			}
			c.Attachment(chart.ID + ".csv")
			c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
			return c.Send(buf.Bytes())
		}
		return c.JSON(chart)
	})
}

func dashboardData(c *fiber.Ctx, service *airquality.Service) (*views.DashboardData, error) {
	domain := service.Domain()
	bounds, err := parseBounds(c, domain)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return views.NewDashboardData(service.Info(), domain, service.Charts(bounds)), nil
}

// chartQuery holds the parameters of the single-chart endpoint.
type chartQuery struct {
	ID     string `validate:"required,oneof=co-yearly co-monthly no2-yearly so2-yearly so2-monthly no2-monthly o3-monthly"`
	Format string `validate:"omitempty,oneof=json csv"`
}

// boundParams maps query parameter names to the bound they override.
var boundParams = []struct {
	name string
	dst  func(*airquality.BoundsOverride) **int
}{
	{"year_min", func(o *airquality.BoundsOverride) **int { return &o.YearMin }},
	{"year_max", func(o *airquality.BoundsOverride) **int { return &o.YearMax }},
	{"temp_min", func(o *airquality.BoundsOverride) **int { return &o.TempMin }},
	{"temp_max", func(o *airquality.BoundsOverride) **int { return &o.TempMax }},
	{"pres_min", func(o *airquality.BoundsOverride) **int { return &o.PresMin }},
	{"pres_max", func(o *airquality.BoundsOverride) **int { return &o.PresMax }},
	{"rain_min", func(o *airquality.BoundsOverride) **int { return &o.RainMin }},
	{"rain_max", func(o *airquality.BoundsOverride) **int { return &o.RainMax }},
}

// parseBounds applies the bound query parameters over the dataset domain.
// Inverted bounds are accepted; they just match nothing.
func parseBounds(c *fiber.Ctx, domain airquality.FilterBounds) (airquality.FilterBounds, error) {
	var o airquality.BoundsOverride
	for _, p := range boundParams {
		s := strings.TrimSpace(c.Query(p.name))
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return airquality.FilterBounds{}, fmt.Errorf("invalid %s %q: expected integer", p.name, s)
		}
		*p.dst(&o) = &n
	}
	return o.Apply(domain), nil
}
