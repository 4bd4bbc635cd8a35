package httpapi

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"

	"github.com/earthlens/nasa-data-proxy/internal/geocode"
	"github.com/earthlens/nasa-data-proxy/internal/hydrology"
	"github.com/earthlens/nasa-data-proxy/internal/links"
)

var validate = validator.New()

// Deps bundles everything the handlers need.
type Deps struct {
	Service *hydrology.Service
	Links   links.Config
	Geo     *geocode.Resolver
	Clock   clockwork.Clock
	Port    string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "NASA Data Proxy Server is running",
			"timestamp": deps.Clock.Now().UTC().Format(time.RFC3339),
			"port":      deps.Port,
		})
	})

	api := app.Group("/api/nasa")

	api.Get("/data-rods", func(c *fiber.Ctx) error {
		var q dataRodsQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result := deps.Service.Resolve(c.Context(), hydrology.Variable(q.Variable), q.lat, q.lng, q.start, q.end)

		response := fiber.Map{
			"data":     result.Series,
			"source":   result.Source,
			"status":   result.Status,
			"variable": result.Variable,
			"location": fiber.Map{"latitude": q.lat, "longitude": q.lng},
			"dateRange": fiber.Map{
				"startDate": q.StartDate,
				"endDate":   q.EndDate,
			},
		}
		if result.Error != "" {
			response["originalError"] = result.Error
		}
		return c.JSON(response)
	})

	api.Post("/bulk-data", func(c *fiber.Ctx) error {
		var req bulkRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		start, end, err := parseDateRange(req.StartDate, req.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		variables := make([]hydrology.Variable, 0, len(req.Variables))
		for _, v := range req.Variables {
			variables = append(variables, hydrology.Variable(v))
		}

		envelope := deps.Service.ResolveAll(c.Context(), variables, *req.Latitude, *req.Longitude, start, end)
		if deps.Geo.Enabled() {
			envelope.PlaceName = deps.Geo.PlaceName(*req.Latitude, *req.Longitude)
		}
		return c.JSON(envelope)
	})

	api.Get("/giovanni-url", func(c *fiber.Ctx) error {
		lat, lng, err := parseCoordinates(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		days := c.QueryInt("days", links.DefaultGiovanniDays)
		url := deps.Links.Giovanni(lat, lng, c.Query("variable"), days, deps.Clock.Now().UTC())
		return c.JSON(fiber.Map{"url": url})
	})

	api.Get("/worldview-url", func(c *fiber.Ctx) error {
		lat, lng, err := parseCoordinates(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		url := deps.Links.Worldview(lat, lng, c.Query("layers"), deps.Clock.Now().UTC())
		return c.JSON(fiber.Map{"url": url})
	})

	api.Get("/earthdata-url", func(c *fiber.Ctx) error {
		lat, lng, err := parseCoordinates(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		url := deps.Links.EarthdataSearch(lat, lng, c.Query("keywords"))
		return c.JSON(fiber.Map{"url": url})
	})

	api.Get("/cptec", func(c *fiber.Ctx) error {
		lat, lng, err := parseCoordinates(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(deps.Links.Cptec(lat, lng, deps.Clock.Now().UTC()))
	})
}

// bulkRequest is the body of POST /api/nasa/bulk-data. Lat/lng are pointers
// so zero (equator/meridian) still passes the required check.
type bulkRequest struct {
	Variables []string `json:"variables" validate:"required,min=1,dive,required"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	StartDate string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// dataRodsQuery holds the single-variable endpoint's query parameters.
type dataRodsQuery struct {
	Variable  string `validate:"required"`
	StartDate string `validate:"required,datetime=2006-01-02"`
	EndDate   string `validate:"required,datetime=2006-01-02"`

	lat, lng   float64
	start, end time.Time
}

func (q *dataRodsQuery) bind(c *fiber.Ctx) error {
	q.Variable = c.Query("variable")
	q.StartDate = c.Query("startDate")
	q.EndDate = c.Query("endDate")

	if err := validate.Struct(q); err != nil {
		return err
	}

	var err error
	if q.lat, q.lng, err = parseCoordinates(c); err != nil {
		return err
	}
	q.start, q.end, err = parseDateRange(q.StartDate, q.EndDate)
	return err
}

func parseCoordinates(c *fiber.Ctx) (float64, float64, error) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "latitude must be a decimal degree value")
	}
	lng, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "longitude must be a decimal degree value")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "coordinates out of range")
	}
	return lat, lng, nil
}

func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(hydrology.DateFormat, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "startDate must be YYYY-MM-DD")
	}
	end, err := time.Parse(hydrology.DateFormat, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "endDate must be YYYY-MM-DD")
	}
	return start, end, nil
}
