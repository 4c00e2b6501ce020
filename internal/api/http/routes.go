package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/cleanshores/shorecast/internal/events"
	"github.com/cleanshores/shorecast/internal/pipeline"
	"github.com/cleanshores/shorecast/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, pl *pipeline.Pipeline, st store.Store, catalog *events.Catalog) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		loc, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res := pl.FetchAndRender(c.Context(), loc)
		if !res.OK {
			if errors.Is(res.Err, pipeline.ErrNoLocation) {
				return c.Status(fiber.StatusBadRequest).JSON(res)
			}
			return c.Status(fiber.StatusBadGateway).JSON(res)
		}
		return c.JSON(res)
	})

	v1.Get("/weather/cached", func(c *fiber.Ctx) error {
		raw, err := st.Get(pipeline.SnapshotKey)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no cached weather snapshot")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read cached snapshot")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(raw)
	})

	v1.Get("/cleanups", func(c *fiber.Ctx) error {
		evs := catalog.List()
		if c.QueryBool("upcoming") {
			evs = catalog.Upcoming(time.Now().UTC())
		}
		return c.JSON(fiber.Map{
			"count":  len(evs),
			"events": evs,
		})
	})
}

// coordsQuery holds the optional lat/lon query pair.
type coordsQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

// parseCoordsQuery returns nil when neither coordinate is given; giving only
// one of the pair is an error.
func parseCoordsQuery(c *fiber.Ctx) (*pipeline.Location, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("lat and lon must be provided together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, errors.New("invalid lon")
	}

	q := coordsQuery{Lat: lat, Lon: lon}
	if err := validate.Struct(q); err != nil {
		return nil, err
	}

	return &pipeline.Location{Lat: q.Lat, Lon: q.Lon}, nil
}
