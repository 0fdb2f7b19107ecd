package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
)

func TestPageSlice(t *testing.T) {
	t.Parallel()

	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}

	window, pg := pageSlice(items, pageOpts{Page: 1, PageSize: 10})
	assert.Equal(t, 1, window[0])
	assert.Equal(t, 10, window[9])
	assert.False(t, pg.HasPrev)
	assert.True(t, pg.HasNext)
	assert.Equal(t, 1, pg.StartIndex)
	assert.Equal(t, 10, pg.EndIndex)
	assert.Equal(t, 25, pg.TotalCount)

	window, pg = pageSlice(items, pageOpts{Page: 3, PageSize: 10})
	assert.Len(t, window, 5)
	assert.True(t, pg.HasPrev)
	assert.False(t, pg.HasNext)
	assert.Equal(t, 21, pg.StartIndex)
	assert.Equal(t, 25, pg.EndIndex)

	window, pg = pageSlice(items, pageOpts{Page: 9, PageSize: 10})
	assert.Empty(t, window)
	assert.Zero(t, pg.StartIndex)
	assert.False(t, pg.HasNext)

	// Zero values fall back to page 1, size 10.
	window, pg = pageSlice(items, pageOpts{})
	assert.Len(t, window, 10)
	assert.Equal(t, 1, pg.Page)
}

func TestGetPageParams(t *testing.T) {
	t.Parallel()

	page, size := getPageParams(url.Values{})
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	page, size = getPageParams(url.Values{"page": {"3"}, "page_size": {"25"}})
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	page, size = getPageParams(url.Values{"page": {"-1"}, "page_size": {"4000"}})
	assert.Equal(t, 1, page, "invalid page falls back")
	assert.Equal(t, 10, size, "oversized page_size falls back")
}

func TestBuildPageURL(t *testing.T) {
	t.Parallel()

	q := url.Values{"semester": {"3"}, "page": {"1"}, "hx-request": {"true"}, "name": {""}}
	got := buildPageURL("/courses", q, pageOpts{Page: 2, PageSize: 10})

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "/courses", u.Path)
	assert.Equal(t, "2", u.Query().Get("page"))
	assert.Equal(t, "3", u.Query().Get("semester"), "filters survive pagination")
	assert.Empty(t, u.Query().Get("hx-request"), "htmx params are dropped")
	assert.False(t, u.Query().Has("name"), "blank params are dropped")
}

func TestHandleDelete(t *testing.T) {
	t.Parallel()

	h := &UIHandlers{T: testRenderer(t)}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		var deleted string
		req := httptest.NewRequest(http.MethodPost, "/admins/a@uni.edu/delete", nil)
		req.SetPathValue("id", "a@uni.edu")
		rec := httptest.NewRecorder()
		h.handleDelete(rec, req, deleteHandlerOpts{
			Delete: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
			RedirectPath: "/admins",
			SuccessToast: "Admin deleted",
		})

		assert.Equal(t, "a@uni.edu", deleted)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "/admins", rec.Header().Get("Hx-Redirect"))
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Admin deleted")
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h.handleDelete(rec, httptest.NewRequest(http.MethodPost, "/admins//delete", nil), deleteHandlerOpts{
			Delete: func(context.Context, string) error { return nil },
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("not found upstream", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/admins/gone@uni.edu/delete", nil)
		req.SetPathValue("id", "gone@uni.edu")
		rec := httptest.NewRecorder()
		h.handleDelete(rec, req, deleteHandlerOpts{
			Delete: func(context.Context, string) error { return apperrors.NotFound("no such admin") },
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("upstream failure", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/admins/a@uni.edu/delete", nil)
		req.SetPathValue("id", "a@uni.edu")
		rec := httptest.NewRecorder()
		h.handleDelete(rec, req, deleteHandlerOpts{
			Delete: func(context.Context, string) error { return apperrors.Internal("boom") },
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestPrepareFormFrame(t *testing.T) {
	t.Parallel()

	meta := func(mode FormMode) PageMeta {
		if mode == FormModeEdit {
			return PageMeta{Title: "Edit", CurrentPage: PageAdminForm}
		}
		return PageMeta{Title: "New", CurrentPage: PageAdminForm}
	}

	data, mode := prepareFormFrame(FormFrameOpts{
		R:           httptest.NewRequest(http.MethodGet, "/admins/new", nil),
		DefaultMode: FormModeCreate,
		MetaForMode: meta,
	})
	assert.Equal(t, FormModeCreate, mode)
	assert.Equal(t, "create", data["Mode"])
	assert.NotNil(t, data["Errors"], "templates index Errors unguarded")
	assert.Equal(t, "New", data["Title"])

	data, mode = prepareFormFrame(FormFrameOpts{
		R:           httptest.NewRequest(http.MethodGet, "/admins/a@uni.edu/edit", nil),
		Data:        map[string]any{"Mode": "edit"},
		DefaultMode: FormModeCreate,
		MetaForMode: meta,
	})
	assert.Equal(t, FormModeEdit, mode)
	assert.Equal(t, "Edit", data["Title"])
}

func TestErrorMessageFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no such course",
		errorMessageFor(apperrors.NotFound("no such course"), "fallback"))
	assert.Contains(t,
		errorMessageFor(apperrors.Unavailable("x"), "fallback"), "temporarily unavailable")
	assert.Equal(t, "fallback", errorMessageFor(assert.AnError, "fallback"))
}

func TestNotFoundPage(t *testing.T) {
	t.Parallel()

	h := &UIHandlers{T: testRenderer(t)}
	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}
