package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alumnet-lab/backend/pkg/errorx"
	"github.com/alumnet-lab/backend/pkg/xcontext"
)

// Page is embedded into list responses to fill the pagination part of the
// envelope.
type Page struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

func NewPage(offset, limit int, total int64) Page {
	return Page{Total: total, Offset: offset, Limit: limit}
}

func (p Page) PageInfo() Page {
	return p
}

type paginated interface {
	PageInfo() Page
}

type response struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
	Pagination *Page  `json:"pagination,omitempty"`
}

func writeResponse(ctx context.Context, w http.ResponseWriter, status int, resp any) {
	body := response{Success: true, Data: resp}
	if p, ok := resp.(paginated); ok {
		page := p.PageInfo()
		body.Pagination = &page
	}

	writeJSON(ctx, w, status, body)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	writeJSON(ctx, w, StatusOf(err), response{Message: messageOf(err)})
}

// StatusOf returns the HTTP status corresponding to err.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var errx errorx.Error
	if errors.As(err, &errx) {
		return errx.Code.HTTPStatus()
	}

	return http.StatusInternalServerError
}

func messageOf(err error) string {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return errx.Message
	}

	return errorx.Unknown.Message
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal the response: %v", err)
		status = http.StatusInternalServerError
		b = []byte(`{"success":false,"message":"Request failed"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
