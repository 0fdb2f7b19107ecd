package httpx

import (
	"net/http"

	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// Assistants serves the assistants list page, HTMX-aware.
func (h *UIHandlers) Assistants(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[uniapi.Assistant, struct{}]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetcher:  h.AssistantSvc.List,
		BasePath: "/assistants",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Assistants",
			PageTitle:   "Assistants",
			CurrentPage: PageAssistants,
		},
		ItemsKey:     "Assistants",
		ErrorMessage: "Unable to load assistants.",
	})
}

func (h *UIHandlers) renderAssistantForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	data, _ = prepareFormFrame(FormFrameOpts{
		R:           r,
		Data:        data,
		DefaultMode: FormModeCreate,
		MetaForMode: func(mode FormMode) PageMeta {
			if mode == FormModeEdit {
				return PageMeta{
					Title:       "Uni Portal - Edit Assistant",
					PageTitle:   "Edit Assistant",
					CurrentPage: PageAssistantForm,
				}
			}
			return PageMeta{Title: "Uni Portal - New Assistant", PageTitle: "New Assistant", CurrentPage: PageAssistantForm}
		},
	})
	h.addCourseOptions(r, data)
	h.renderDashboardPage(w, r, data)
}

// AssistantNew renders the create form.
func (h *UIHandlers) AssistantNew(w http.ResponseWriter, r *http.Request) {
	h.renderAssistantForm(w, r, map[string]any{"Mode": "create"})
}

// AssistantEdit renders the edit form for an existing assistant.
func (h *UIHandlers) AssistantEdit(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("id")
	if email == "" {
		h.NotFound(w, r)
		return
	}
	rec, err := h.AssistantSvc.Get(r.Context(), email)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	h.renderAssistantForm(w, r, map[string]any{
		"Mode":            "edit",
		"Assistant":       rec,
		"SelectedCourses": selectedCourseIDs(rec.Courses),
	})
}

// parseAssistantForm parses and validates the assistant form into an assistant DTO.
func parseAssistantForm(r *http.Request) (uniapi.Assistant, map[string]string) {
	f, errs := parseStaffForm(r)
	return uniapi.Assistant{
		Name:        f.Name,
		Email:       f.Email,
		BackupEmail: f.BackupEmail,
		Role:        "Assistant",
		Faculty:     f.Faculty,
		Courses:     f.Courses,
	}, errs
}

// renderAssistantFormWithData adapts generic form handler data to the assistant form renderer.
func (h *UIHandlers) renderAssistantFormWithData(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if formData, ok := data["FormData"].(uniapi.Assistant); ok {
		data["Assistant"] = formData
		data["SelectedCourses"] = selectedCourseIDs(formData.Courses)
	}
	h.renderAssistantForm(w, r, data)
}

// AssistantCreate handles POST from the create form.
func (h *UIHandlers) AssistantCreate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Assistant]{
		W:          w,
		R:          r,
		Mode:       FormModeCreate,
		Parser:     parseAssistantForm,
		Service:    h.AssistantSvc,
		Renderer:   h.renderAssistantFormWithData,
		SuccessURL: "/assistants",
		PageMeta: PageMeta{
			Title:       "Uni Portal - New Assistant",
			PageTitle:   "New Assistant",
			CurrentPage: PageAssistantForm,
		},
	})
}

// AssistantUpdate handles POST from the edit form.
func (h *UIHandlers) AssistantUpdate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Assistant]{
		W:          w,
		R:          r,
		Mode:       FormModeEdit,
		Parser:     parseAssistantForm,
		Service:    h.AssistantSvc,
		Renderer:   h.renderAssistantFormWithData,
		SuccessURL: "/assistants",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Edit Assistant",
			PageTitle:   "Edit Assistant",
			CurrentPage: PageAssistantForm,
		},
	})
}

// AssistantDelete removes an assistant by email.
func (h *UIHandlers) AssistantDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Delete:       h.AssistantSvc.Delete,
		RedirectPath: "/assistants",
		SuccessToast: "Assistant deleted",
	})
}
