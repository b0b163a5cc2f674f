package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aldzban/ambient/schema"
	"github.com/aldzban/ambient/semantic"
)

type ListPackagesResponse struct {
	Packages []PackageSummary `json:"packages"`
}

type PackageSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Version    string `json:"version,omitempty"`
	Components int    `json:"components"`
	Concepts   int    `json:"concepts"`
	Messages   int    `json:"messages"`
}

// ListPackages returns a summary of every loaded package, dependency-first.
func ListPackages(sem *semantic.Semantic) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		packages := sem.Packages()
		resp := ListPackagesResponse{Packages: make([]PackageSummary, 0, len(packages))}
		for _, pkg := range packages {
			resp.Packages = append(resp.Packages, PackageSummary{
				ID:         string(pkg.ID),
				Name:       pkg.Name,
				Version:    pkg.Version,
				Components: len(pkg.Components),
				Concepts:   len(pkg.Concepts),
				Messages:   len(pkg.Messages),
			})
		}
		return ctx.JSON(resp)
	}
}

// GetPackage returns the resolved document of one loaded package.
func GetPackage(sem *semantic.Semantic) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		pkg, err := sem.Package(ctx.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return ctx.JSON(pkg.Document())
	}
}

// GetPackageSchema returns the JSON schema of the resolved-package document
// format.
func GetPackageSchema() func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		bz, err := schema.SerializePackageSchema()
		if err != nil {
			return err
		}
		ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return ctx.Send(bz)
	}
}
