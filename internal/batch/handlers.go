package batch

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hughac94/rungrade-backend/internal/reliability"
)

// RegisterRoutes exposes the two orchestration modes: POST /analyze
// processes the whole upload synchronously, POST /batch returns a job
// handle whose events stream over /stream/ws/:jobID.
func RegisterRoutes(r fiber.Router, reg *Registry, defaultBinLengthM float64) {
	r.Post("/analyze", func(c *fiber.Ctx) error {
		files, binLength, filter, err := parseUpload(c, defaultBinLengthM)
		if err != nil {
			return err
		}
		report := Process(c.Context(), files, binLength, filter, nil)
		return c.JSON(report)
	})

	r.Post("/batch", func(c *fiber.Ctx) error {
		files, binLength, filter, err := parseUpload(c, defaultBinLengthM)
		if err != nil {
			return err
		}
		jobID := reg.Submit(files, binLength, filter)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": jobID})
	})
}

func parseUpload(c *fiber.Ctx, defaultBinLengthM float64) ([]File, float64, *reliability.Options, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, 0, nil, fiber.NewError(fiber.StatusBadRequest, "multipart form required")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, 0, nil, fiber.NewError(fiber.StatusBadRequest, "no files provided")
	}

	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return nil, 0, nil, fiber.NewError(fiber.StatusBadRequest, "unreadable upload: "+fh.Filename)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, 0, nil, fiber.NewError(fiber.StatusBadRequest, "unreadable upload: "+fh.Filename)
		}
		files = append(files, File{Name: fh.Filename, Data: data})
	}

	binLength := defaultBinLengthM
	if raw := c.FormValue("bin_length"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return nil, 0, nil, fiber.NewError(fiber.StatusBadRequest, "bin_length must be a positive number")
		}
		binLength = v
	}

	var filter *reliability.Options
	if c.FormValue("check_plausibility") == "true" {
		filter = &reliability.Options{CheckPlausibility: true}
	}
	if minRaw, maxRaw := c.FormValue("hr_min"), c.FormValue("hr_max"); minRaw != "" && maxRaw != "" {
		min, errMin := strconv.Atoi(minRaw)
		max, errMax := strconv.Atoi(maxRaw)
		if errMin != nil || errMax != nil || min > max {
			return nil, 0, nil, fiber.NewError(fiber.StatusBadRequest, "invalid heart-rate range")
		}
		if filter == nil {
			filter = &reliability.Options{}
		}
		filter.HeartRate = &reliability.HRRange{Min: min, Max: max}
	}

	return files, binLength, filter, nil
}
