package analysis

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hughac94/rungrade-backend/internal/grade"
)

type analyzeRequest struct {
	Results []Run `json:"results"`
}

// RegisterRoutes exposes the cross-run analyses over already-binned
// results, for clients that keep bins from earlier uploads.
func RegisterRoutes(r fiber.Router) {
	r.Post("/gradient-pace", func(c *fiber.Ctx) error {
		runs, err := parseRuns(c)
		if err != nil {
			return err
		}
		return c.JSON(Analyze(runs))
	})

	r.Post("/deviation", func(c *fiber.Ctx) error {
		runs, err := parseRuns(c)
		if err != nil {
			return err
		}
		statistic := Statistic(c.Query("statistic", string(StatMedian)))
		if statistic != StatMean && statistic != StatMedian {
			return fiber.NewError(fiber.StatusBadRequest, "statistic must be mean or median")
		}
		return c.JSON(DeviationView(runs, grade.Literature(), statistic))
	})
}

func parseRuns(c *fiber.Ctx) ([]Run, error) {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.Results == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "results array required")
	}
	return req.Results, nil
}
