package rest

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidateOpenAPISpec loads and validates the published API contract. Run
// at startup so a broken spec fails the deploy rather than the docs page.
func ValidateOpenAPISpec(ctx context.Context, path string) error {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("load openapi spec %s: %w", path, err)
	}

	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("validate openapi spec %s: %w", path, err)
	}

	return nil
}
