package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "coachingku_backend/internals/helpers"
)

type stubResolver struct {
	classIDs   []uuid.UUID
	studentIDs []uuid.UUID
	err        error
}

func (r stubResolver) ClassSectionIDsForBatch(context.Context, uuid.UUID, string) ([]uuid.UUID, error) {
	return r.classIDs, r.err
}

func (r stubResolver) StudentIDsForBatch(context.Context, uuid.UUID, string) ([]uuid.UUID, error) {
	return r.studentIDs, r.err
}

type scopeResult struct {
	Empty        bool `json:"empty"`
	ClassCount   int  `json:"class_count"`
	StudentCount int  `json:"student_count"`
}

func newScopeTestApp(ctrl *AttendanceController) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	app.Get("/attendance", func(c *fiber.Ctx) error {
		scope, err := ctrl.resolveScope(c, uuid.New())
		if err != nil {
			return err
		}
		return helper.JsonOK(c, "ok", scopeResult{
			Empty:        scope.empty,
			ClassCount:   len(scope.classSectionIDs),
			StudentCount: len(scope.studentFilter),
		})
	})
	return app
}

func decodeScope(t *testing.T, resp *http.Response) scopeResult {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Data scopeResult `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(raw, &body))
	return body.Data
}

func TestResolveScopeRejectsInvalidClassSectionID(t *testing.T) {
	app := newScopeTestApp(NewAttendanceController(nil, stubResolver{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/attendance?class_section_id=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// A resolver failure must abort the handler with a 500, never fall through
// to an unscoped 200.
func TestResolveScopeResolverFailureAbortsHandler(t *testing.T) {
	app := newScopeTestApp(NewAttendanceController(nil, stubResolver{err: errors.New("resolver unavailable")}))

	resp, err := app.Test(httptest.NewRequest("GET", "/attendance?batch=Batch-7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/attendance", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "no batch filter never touches the resolver")
}

func TestResolveScopeBatchIntersection(t *testing.T) {
	classInBatch := uuid.New()
	otherClass := uuid.New()
	student := uuid.New()

	resolver := stubResolver{
		classIDs:   []uuid.UUID{classInBatch},
		studentIDs: []uuid.UUID{student},
	}
	ctrl := NewAttendanceController(nil, resolver)

	tests := []struct {
		name      string
		target    string
		wantEmpty bool
	}{
		{"batch only", "/attendance?batch=Batch-7", false},
		{"class inside batch", "/attendance?batch=Batch-7&class_section_id=" + classInBatch.String(), false},
		{"class outside batch", "/attendance?batch=Batch-7&class_section_id=" + otherClass.String(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newScopeTestApp(ctrl)
			resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			scope := decodeScope(t, resp)
			assert.Equal(t, tt.wantEmpty, scope.Empty)
			if !tt.wantEmpty {
				assert.Equal(t, 1, scope.StudentCount)
				assert.Equal(t, 1, scope.ClassCount)
			}
		})
	}
}

func TestResolveScopeEmptyBatchShortCircuits(t *testing.T) {
	app := newScopeTestApp(NewAttendanceController(nil, stubResolver{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/attendance?batch=Batch-7", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.True(t, decodeScope(t, resp).Empty)
}
