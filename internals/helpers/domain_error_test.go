package helper

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jurnalku_backend/internals/features/evaluation/evalerr"
)

func TestJsonDomainError(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", evalerr.Validation("template_name", "wajib diisi"), fiber.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"not found wrapped", fmt.Errorf("template %s: %w", id, evalerr.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{"invalid state", &evalerr.InvalidStateError{Entity: "assessment", ID: id, State: "reviewed", Action: "submit"}, fiber.StatusConflict, "CONFLICT"},
		{"referential", &evalerr.ReferentialIntegrityError{Entity: "indicator", ID: id, Reason: "dipakai"}, fiber.StatusConflict, "CONFLICT"},
		{"cross template", &evalerr.CrossTemplateMoveError{SubCategoryID: id}, fiber.StatusConflict, "CONFLICT"},
		{"fiber error", fiber.NewError(fiber.StatusBadRequest, "id tidak valid"), fiber.StatusBadRequest, "BAD_REQUEST"},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return JsonDomainError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var body ErrorResponse
			require.NoError(t, sonic.Unmarshal(raw, &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.ErrorCode)
		})
	}
}

func TestJsonDomainError_ValidationFieldFallback(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return JsonDomainError(c, &evalerr.ValidationError{Message: "bobot tidak seimbang"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)

	var body ErrorResponse
	require.NoError(t, sonic.Unmarshal(raw, &body))
	assert.Equal(t, []string{"bobot tidak seimbang"}, body.Errors["_"])
}

func TestActorID(t *testing.T) {
	actor := uuid.New()
	app := fiber.New()
	app.Get("/opt", func(c *fiber.Ctx) error {
		id, err := ActorID(c)
		if err != nil {
			return JsonDomainError(c, err)
		}
		return c.SendString(id.String())
	})
	app.Get("/req", func(c *fiber.Ctx) error {
		id, err := RequireActorID(c)
		if err != nil {
			return JsonDomainError(c, err)
		}
		return c.SendString(id.String())
	})

	do := func(path, header string) (int, string) {
		req := httptest.NewRequest("GET", path, nil)
		if header != "" {
			req.Header.Set(ActorHeader, header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(b)
	}

	status, body := do("/opt", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, uuid.Nil.String(), body)

	status, body = do("/opt", actor.String())
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, actor.String(), body)

	status, _ = do("/opt", "bukan-uuid")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do("/req", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, p := Paginate(items, Paging{Page: 2, PerPage: 2, Offset: 2, Limit: 2})
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, int64(5), p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	page, p = Paginate(items, Paging{Page: 9, PerPage: 2, Offset: 16, Limit: 2})
	assert.Empty(t, page)
	assert.False(t, p.HasNext)
}
