package httpx

import (
	"context"
	"net/http"
	"net/url"
)

// ListFetcher is a generic function type for fetching list data without filters.
// The upstream API returns complete collections, so fetchers load everything and
// pagination is applied in memory afterwards.
type ListFetcher[T any] func(ctx context.Context) ([]T, error)

// FilterParser is a function type for parsing URL query parameters into filter data.
// It takes url.Values and returns the parsed filter of type F, or an error if parsing fails.
// The error allows the handler to show meaningful validation errors for invalid filter params.
type FilterParser[F any] func(url.Values) (F, error)

// FilteredFetcher is a function type for fetching data with filters applied.
// It takes context and parsed filters of type F and returns the full filtered collection.
type FilteredFetcher[T any, F any] func(ctx context.Context, filters F) ([]T, error)

// DataEnricher is a function type for enriching template data after fetching items.
// It receives the template data builder, items, and filters, and can add custom data.
// This allows domain-specific data enrichment (e.g., adding counts, related data).
type DataEnricher[T any, F any] func(builder *TemplateDataBuilder, items []T, filters F)

// ListHandlerOpts contains all options needed for the generic list handler.
// Uses two generic type parameters: T for item type, F for filter type.
// All function types maintain ≤3 parameters per project constraints.
type ListHandlerOpts[T any, F any] struct {
	// Handler is the UIHandlers instance for rendering (required)
	Handler *UIHandlers
	// W is the HTTP response writer (required)
	W http.ResponseWriter
	// R is the HTTP request (required)
	R *http.Request
	// Fetcher is the function to fetch list data (simple case, no filtering)
	Fetcher ListFetcher[T]
	// FilteredFetcher is the function to fetch data with filters (complex case)
	// Use this OR Fetcher, not both. If both are provided, FilteredFetcher takes precedence.
	FilteredFetcher FilteredFetcher[T, F]
	// FilterParser is an optional function to parse filters from query params
	FilterParser FilterParser[F]
	// EnrichData is an optional function to add custom data to the template after fetching
	EnrichData DataEnricher[T, F]
	// BasePath is the base URL path for pagination links (e.g., "/courses", "/students")
	BasePath string
	// PageMeta contains page metadata for rendering
	PageMeta PageMeta
	// ItemsKey is the template data key for the items (e.g., "Courses", "Students")
	ItemsKey string
	// ErrorMessage is the message to display when data fetching fails
	ErrorMessage string
}

// HandleList is the generic list view handler that eliminates pagination/filtering duplication.
// It handles filtering, in-memory pagination, error handling, and template rendering.
// Uses two generic type parameters: T for item type, F for filter type.
//
// Usage examples:
//
// Simple list (no filtering):
//
//	HandleList(ListHandlerOpts[uniapi.Employee, struct{}]{
//	    Handler:      h,
//	    W:            w,
//	    R:            r,
//	    Fetcher:      h.Admins.List,
//	    BasePath:     "/admins",
//	    PageMeta:     PageMeta{Title: "Admins", CurrentPage: PageAdmins},
//	    ItemsKey:     "Admins",
//	    ErrorMessage: "Unable to load admins.",
//	})
//
// With filtering:
//
//	HandleList(ListHandlerOpts[uniapi.Course, service.CourseFilter]{
//	    Handler:         h,
//	    W:               w,
//	    R:               r,
//	    FilteredFetcher: h.Courses.List,
//	    FilterParser:    parseCourseFilter,
//	    BasePath:        "/courses",
//	    PageMeta:        PageMeta{Title: "Courses", CurrentPage: PageCourses},
//	    ItemsKey:        "Courses",
//	    ErrorMessage:    "Unable to load courses.",
//	})
func HandleList[T, F any](opts ListHandlerOpts[T, F]) {
	// Defensive nil checks for required dependencies
	if !validateListHandlerDeps(opts) {
		return
	}

	// Parse pagination parameters
	page, pageSize := getPageParams(opts.R.URL.Query())

	// Parse filters if parser is provided
	var filters F
	if opts.FilterParser != nil {
		var filterErr error
		filters, filterErr = opts.FilterParser(opts.R.URL.Query())
		if filterErr != nil {
			opts.renderListError(page, pageSize, "Invalid filter parameters: "+filterErr.Error())
			return
		}
	}

	// Create the appropriate fetcher function
	fetchFunc := createListFetcher(opts, filters)
	if fetchFunc == nil {
		opts.renderListError(page, pageSize, "No data fetcher configured.")
		return
	}

	// Fetch and render data
	items, err := fetchFunc(opts.R.Context())
	if err != nil {
		opts.renderListError(page, pageSize, errorMessageFor(err, opts.ErrorMessage))
		return
	}

	renderListSuccess(listRenderCtx[T, F]{
		Opts:     opts,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
		Filters:  filters,
	})
}

// listRenderCtx consolidates parameters for rendering list success to maintain ≤3 params constraint.
type listRenderCtx[T any, F any] struct {
	Opts     ListHandlerOpts[T, F]
	Page     int
	PageSize int
	Items    []T
	Filters  F
}

// validateListHandlerDeps checks required dependencies and returns false if any are nil.
func validateListHandlerDeps[T, F any](opts ListHandlerOpts[T, F]) bool {
	if opts.W == nil || opts.R == nil || opts.Handler == nil {
		if opts.W != nil {
			http.Error(opts.W, "Internal configuration error", http.StatusInternalServerError)
		}
		return false
	}
	return true
}

// createListFetcher creates the appropriate fetcher function based on opts configuration.
func createListFetcher[T, F any](opts ListHandlerOpts[T, F], filters F) ListFetcher[T] {
	switch {
	case opts.FilteredFetcher != nil:
		return func(ctx context.Context) ([]T, error) {
			return opts.FilteredFetcher(ctx, filters)
		}
	case opts.Fetcher != nil:
		return opts.Fetcher
	default:
		return nil
	}
}

// renderListError renders an error page with pagination metadata.
func (lh *ListHandlerOpts[T, F]) renderListError(page, pageSize int, errMsg string) {
	builder := NewTemplateData(lh.R, lh.PageMeta).
		WithPagination(PaginationData{Page: page, PageSize: pageSize, BasePath: lh.BasePath}).
		WithError(errMsg)
	lh.Handler.renderDashboardPage(lh.W, lh.R, builder.Build())
}

// renderListSuccess slices one page out of the fetched collection and renders it.
func renderListSuccess[T, F any](ctx listRenderCtx[T, F]) {
	window, pg := pageSlice(ctx.Items, pageOpts{Page: ctx.Page, PageSize: ctx.PageSize})
	pg.BasePath = ctx.Opts.BasePath

	builder := NewTemplateData(ctx.Opts.R, ctx.Opts.PageMeta).
		WithPagination(pg).
		With(ctx.Opts.ItemsKey, window)

	// Allow domain-specific data enrichment
	if ctx.Opts.EnrichData != nil {
		ctx.Opts.EnrichData(builder, window, ctx.Filters)
	}

	ctx.Opts.Handler.renderDashboardPage(ctx.Opts.W, ctx.Opts.R, builder.Build())
}
