package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wI2L/jsondiff"

	"github.com/aldzban/ambient/schema"
	"github.com/aldzban/ambient/semantic"
)

type PostDiffRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type PostDiffResponse struct {
	Equal bool           `json:"equal"`
	Patch jsondiff.Patch `json:"patch,omitempty"`
}

// PostDiff compares the resolved documents of two loaded packages and returns
// the JSON patch between them.
func PostDiff(sem *semantic.Semantic) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		req := new(PostDiffRequest)
		if err := ctx.BodyParser(req); err != nil {
			return err
		}

		before, err := sem.Package(req.Before)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		after, err := sem.Package(req.After)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		patch, err := schema.Diff(before, after)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to diff packages: "+err.Error())
		}
		return ctx.JSON(&PostDiffResponse{Equal: len(patch) == 0, Patch: patch})
	}
}
