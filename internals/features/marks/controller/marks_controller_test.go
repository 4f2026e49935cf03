package controller

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "coachingku_backend/internals/helpers"
)

type failingResolver struct{}

func (failingResolver) ClassSectionIDsForBatch(context.Context, uuid.UUID, string) ([]uuid.UUID, error) {
	return nil, errors.New("resolver unavailable")
}

func (failingResolver) StudentIDsForBatch(context.Context, uuid.UUID, string) ([]uuid.UUID, error) {
	return nil, errors.New("resolver unavailable")
}

func newFilterTestApp(ctrl *MarksController) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	app.Get("/marks", func(c *fiber.Ctx) error {
		if _, err := ctrl.parseFilters(c); err != nil {
			return err
		}
		return helper.JsonOK(c, "ok", nil)
	})
	return app
}

func TestParseFiltersRejectsInvalidUUIDs(t *testing.T) {
	app := newFilterTestApp(&MarksController{})

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"bad test_id", "/marks?test_id=not-a-uuid", fiber.StatusBadRequest},
		{"bad class_section_id", "/marks?class_section_id=123", fiber.StatusBadRequest},
		{"bad subject_id", "/marks?subject_id=xyz", fiber.StatusBadRequest},
		{"bad start_date", "/marks?start_date=10-01-2024", fiber.StatusBadRequest},
		{"valid filters", "/marks?test_id=0b2f1a38-6a51-4b4e-9a52-0f6f4f3f9c5a&start_date=2024-01-10", fiber.StatusOK},
		{"no filters", "/marks", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

// A resolver failure must abort the handler with a 500, never fall through
// to an unfiltered 200.
func TestResolveBatchStudentsResolverFailureAbortsHandler(t *testing.T) {
	ctrl := &MarksController{Resolver: failingResolver{}}
	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	app.Get("/marks", func(c *fiber.Ctx) error {
		if _, _, err := ctrl.resolveBatchStudents(c, uuid.New()); err != nil {
			return err
		}
		return helper.JsonOK(c, "ok", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/marks?batch=Batch-7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/marks", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "no batch filter never touches the resolver")
}
