// Copyright (c) 2026 Zinery. All rights reserved.

package issue

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zinery/zinery/internal/platform/apperr"
	"github.com/zinery/zinery/internal/platform/middleware"
	requestutil "github.com/zinery/zinery/internal/platform/request"
	"github.com/zinery/zinery/internal/platform/respond"
	"github.com/zinery/zinery/internal/platform/validate"
)

// Handler implements issue lifecycle HTTP endpoints. Every route is
// authenticated: the public reading surface lives elsewhere.
type Handler struct {
	issueService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{issueService: service}
}

// Routes returns a [chi.Router] configured with issue routes.
//
// # Endpoints
//   - POST   /                      : Creates a draft issue in a zine.
//   - GET    /?zine_id=             : Lists a zine's issues.
//   - GET    /{issueID}             : Returns an issue summary.
//   - GET    /{issueID}/document    : Returns the builder document.
//   - PUT    /{issueID}/document    : Saves (fully replaces) the document.
//   - GET    /{issueID}/spreads     : Returns the derived spread layout.
//   - POST   /{issueID}/regenerate  : Re-derives spreads in place.
//   - POST   /{issueID}/publish     : Publishes the issue.
//   - POST   /{issueID}/unpublish   : Returns the issue to draft.
//   - DELETE /{issueID}             : Deletes a draft issue.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.create)
	router.Get("/", handler.listByZine)
	router.Get("/{issueID}", handler.get)
	router.Get("/{issueID}/document", handler.getDocument)
	router.Put("/{issueID}/document", handler.save)
	router.Get("/{issueID}/spreads", handler.getSpreads)
	router.Post("/{issueID}/regenerate", handler.regenerate)
	router.Post("/{issueID}/publish", handler.publish)
	router.Post("/{issueID}/unpublish", handler.unpublish)
	router.Delete("/{issueID}", handler.delete)

	return router
}

// # Request Payloads

type createRequest struct {
	ZineID string `json:"zine_id"`
	Title  string `json:"title"`
}

/*
Create opens a new draft issue.

POST /api/v1/issues

Response:
  - 201: Issue: Created draft
  - 403: ErrForbidden: Caller does not own the zine
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldZineID, input.ZineID).
		UUID(FieldZineID, input.ZineID)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	issue, err := handler.issueService.Create(request.Context(), userID, input.ZineID, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, issue)
}

// listByZine lists every issue of an owned zine.
func (handler *Handler) listByZine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	zineID := request.URL.Query().Get(FieldZineID)
	if zineID == "" {
		respond.Error(writer, request, apperr.ValidationError("zine_id query parameter is required"))
		return
	}

	issues, err := handler.issueService.ListByZine(request.Context(), userID, zineID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, issues)
}

// get returns an owned issue's summary row.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	issue, err := handler.issueService.Get(request.Context(), userID, chi.URLParam(request, "issueID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, issue)
}

/*
GetDocument returns the builder document for the editor.

GET /api/v1/issues/{issueID}/document

Response:
  - 200: DocumentState: Pages and elements in editor pixel space
*/
func (handler *Handler) getDocument(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.issueService.GetDocument(request.Context(), userID, chi.URLParam(request, "issueID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, document)
}

/*
Save replaces the issue's document with the submitted builder state.

PUT /api/v1/issues/{issueID}/document

Description: The whole page/block set is rewritten from the payload and
the spread layout re-derived; the response carries the refreshed
counters.

Response:
  - 200: Summary: Updated counters
  - 400: ErrInvalidJSON: Malformed or structurally invalid document
  - 403: ErrForbidden: Caller does not own the issue
*/
func (handler *Handler) save(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var document DocumentState
	if err := requestutil.DecodeJSON(request, &document); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	summary, err := handler.issueService.Save(request.Context(), userID, chi.URLParam(request, "issueID"), &document)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

// getSpreads returns the current derived spread layout.
func (handler *Handler) getSpreads(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	spreads, err := handler.issueService.GetSpreads(request.Context(), userID, chi.URLParam(request, "issueID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, spreads)
}

// regenerate re-derives the spread layout from the stored page order.
func (handler *Handler) regenerate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.issueService.RegenerateSpreads(request.Context(), userID, chi.URLParam(request, "issueID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

/*
Publish makes the issue publicly readable.

POST /api/v1/issues/{issueID}/publish

Response:
  - 200: PublishResult: Summary plus the public URL path
  - 409: ErrConflict: Already published or zero pages
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.issueService.Publish(request.Context(), userID, chi.URLParam(request, "issueID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// unpublish returns the issue to draft.
func (handler *Handler) unpublish(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.issueService.Unpublish(request.Context(), userID, chi.URLParam(request, "issueID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

// delete removes a draft issue.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.issueService.Delete(request.Context(), userID, chi.URLParam(request, "issueID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
