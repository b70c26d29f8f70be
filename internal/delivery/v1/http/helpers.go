package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DRSN-tech/storefront/internal/view"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const maxFormBytes = 64 << 10

// ToHTTPResponse сопоставляет ошибку со статусом и текстом для посетителя.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrInvalidLineIndex):
		return http.StatusBadRequest, e.ErrInvalidLineIndex.Error()
	case errors.Is(err, e.ErrSizeRequired):
		return http.StatusBadRequest, view.NoticeSelectSize.Message()
	case errors.Is(err, e.ErrUnknownSize):
		return http.StatusBadRequest, e.ErrUnknownSize.Error()
	case errors.Is(err, e.ErrMissingProductID):
		return http.StatusBadRequest, e.ErrMissingProductID.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrPaymentDetailsRequired):
		return http.StatusUnprocessableEntity, view.NoticePaymentDetails.Message()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, view.MsgProductNotFound
	case errors.Is(err, e.ErrLineItemNotFound):
		return http.StatusNotFound, e.ErrLineItemNotFound.Error()
	case errors.Is(err, e.ErrOrderExists):
		return http.StatusConflict, e.ErrOrderExists.Error()
	case errors.Is(err, e.ErrCatalogUnavailable), errors.Is(err, e.ErrMalformedCatalog):
		return http.StatusBadGateway, view.MsgFetchFailed
	case errors.Is(err, e.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, view.MsgGenericFailure
	default:
		return http.StatusInternalServerError, view.MsgGenericFailure
	}
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseIndex читает номер позиции корзины из пути.
func parseIndex(r *http.Request) (int, error) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrInvalidLineIndex)
	}

	return idx, nil
}

func parseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrInvalidQuantity)
	}

	return qty, nil
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrStatusBadRequest, err))
	}

	return nil
}

// redirectWithNotice перенаправляет на target (303) с кодом уведомления в параметре notice.
func redirectWithNotice(w http.ResponseWriter, r *http.Request, target string, notice view.Notice) {
	if notice != "" {
		if u, err := url.Parse(target); err == nil {
			q := u.Query()
			q.Set("notice", string(notice))
			u.RawQuery = q.Encode()
			target = u.String()
		}
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}
