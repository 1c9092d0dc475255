// Copyright (c) 2026 Zinery. All rights reserved.

package reader

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zinery/zinery/internal/platform/apperr"
	"github.com/zinery/zinery/internal/platform/constants"
	requestutil "github.com/zinery/zinery/internal/platform/request"
	"github.com/zinery/zinery/internal/platform/respond"
	"github.com/zinery/zinery/internal/platform/validate"
	"github.com/zinery/zinery/pkg/convert"
)

// Handler implements the anonymous reading endpoints. No authentication
// middleware runs here; password-protected zines are gated by the
// X-Reader-Grant header instead.
type Handler struct {
	readerService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{readerService: service}
}

// Routes returns a [chi.Router] configured with the reading routes.
//
// # Endpoints
//   - GET  /{handle}                        : Publisher page with listed zines.
//   - GET  /{handle}/{slug}                 : Zine page with published issues.
//   - POST /{handle}/{slug}/unlock          : Exchanges a password for a grant.
//   - GET  /{handle}/{slug}/{issueNumber}   : A published issue's spreads.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{handle}", handler.getPublisher)
	router.Get("/{handle}/{slug}", handler.getZine)
	router.Post("/{handle}/{slug}/unlock", handler.unlock)
	router.Get("/{handle}/{slug}/{issueNumber}", handler.getIssue)

	return router
}

// # Request Payloads

type unlockRequest struct {
	Password string `json:"password"`
}

// getPublisher returns a publisher's public landing page.
func (handler *Handler) getPublisher(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.readerService.GetPublisher(request.Context(), chi.URLParam(request, "handle"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

// getZine returns a zine's public page. Password-protected zines need a
// valid X-Reader-Grant header.
func (handler *Handler) getZine(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.readerService.GetZine(
		request.Context(),
		chi.URLParam(request, "handle"),
		chi.URLParam(request, "slug"),
		request.Header.Get(constants.HeaderReaderGrant),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

/*
GetIssue resolves a published issue by its public URL path.

GET /api/v1/read/{handle}/{slug}/{issueNumber}

Response:
  - 200: IssueView: Spread layout with resolved page content
  - 403: ErrForbidden: Password-protected zine without a valid grant
  - 404: ErrNotFound: Unknown path or unpublished issue
*/
func (handler *Handler) getIssue(writer http.ResponseWriter, request *http.Request) {
	// Malformed numbers collapse to zero and fall through the same 404
	// as a missing issue.
	issueNumber := convert.ToInt(chi.URLParam(request, "issueNumber"))
	if issueNumber < 1 {
		respond.Error(writer, request, apperr.NotFound("Issue"))
		return
	}

	view, err := handler.readerService.GetIssue(
		request.Context(),
		chi.URLParam(request, "handle"),
		chi.URLParam(request, "slug"),
		issueNumber,
		request.Header.Get(constants.HeaderReaderGrant),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
Unlock exchanges a password-protected zine's reader password for an
opaque access grant.

POST /api/v1/read/{handle}/{slug}/unlock

Response:
  - 200: {grant}: Token to send in X-Reader-Grant on subsequent reads
  - 401: ErrUnauthorized: Incorrect password
  - 409: ErrConflict: Zine is not password protected
*/
func (handler *Handler) unlock(writer http.ResponseWriter, request *http.Request) {
	var input unlockRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grant, err := handler.readerService.Unlock(
		request.Context(),
		chi.URLParam(request, "handle"),
		chi.URLParam(request, "slug"),
		input.Password,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldGrant: grant})
}
