package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/internal/view"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
)

// PageHandler отдаёт страницы магазина и принимает действия посетителя.
type PageHandler struct {
	catalog  usecase.CatalogUC
	cart     usecase.CartUC
	checkout usecase.CheckoutUC
	tmpl     *templates
	logger   logger.Logger
}

func NewPageHandler(
	catalog usecase.CatalogUC,
	cart usecase.CartUC,
	checkout usecase.CheckoutUC,
	tmpl *templates,
	logger logger.Logger,
) *PageHandler {
	return &PageHandler{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		tmpl:     tmpl,
		logger:   logger,
	}
}

func (p *PageHandler) home(w http.ResponseWriter, r *http.Request) {
	data := p.newPage(r, "Home")

	products, err := p.catalog.ListProducts(r.Context())
	if err != nil {
		p.renderFailure(w, tmplHome, view.PageHome, data, err)
		return
	}

	v := view.RenderHome(products)
	data.View = v
	data.Forms = formsFor(v.Bindings)
	p.render(w, http.StatusOK, tmplHome, data)
}

func (p *PageHandler) listing(w http.ResponseWriter, r *http.Request) {
	data := p.newPage(r, "Jackets")

	products, err := p.catalog.ListProducts(r.Context())
	if err != nil {
		p.renderFailure(w, tmplListing, view.PageListing, data, err)
		return
	}

	data.View = view.RenderListing(products)
	p.render(w, http.StatusOK, tmplListing, data)
}

func (p *PageHandler) detail(w http.ResponseWriter, r *http.Request) {
	data := p.newPage(r, "Product")
	state := view.DetailState{SelectedSize: r.URL.Query().Get("size")}

	product, err := p.catalog.GetProduct(r.Context(), r.URL.Query().Get("id"))
	switch {
	case err == nil:
	case errors.Is(err, e.ErrProductNotFound), errors.Is(err, e.ErrMissingProductID):
		data.View = view.RenderDetail(nil, state)
		p.render(w, http.StatusNotFound, tmplDetail, data)
		return
	default:
		p.renderFailure(w, tmplDetail, view.PageDetail, data, err)
		return
	}

	v := view.RenderDetail(product, state)
	data.Title = product.Title
	data.View = v
	data.Forms = formsFor(v.Bindings)
	p.render(w, http.StatusOK, tmplDetail, data)
}

// addItem обрабатывает "Add to cart" на главной и "Add to bag" на странице товара.
// На странице товара с размерами размер обязателен, иначе посетитель получает уведомление.
func (p *PageHandler) addItem(w http.ResponseWriter, r *http.Request) {
	const op = "PageHandler.addItem"

	visitorID, ok := p.visitor(w, r)
	if !ok {
		return
	}

	if err := parseForm(w, r); err != nil {
		p.writeError(w, r, err)
		return
	}

	var (
		id     = strings.TrimSpace(r.PostForm.Get("id"))
		size   = strings.TrimSpace(r.PostForm.Get("size"))
		source = r.PostForm.Get("source")
	)

	if source != sourceHome && source != sourceDetail {
		p.writeError(w, r, e.Wrap(op, e.ErrStatusBadRequest))
		return
	}

	product, err := p.catalog.GetProduct(r.Context(), id)
	if err != nil {
		p.writeError(w, r, e.Wrap(op, err))
		return
	}

	back := "/"
	if source == sourceDetail {
		size, err = detailSize(product, size)
		if errors.Is(err, e.ErrSizeRequired) {
			redirectWithNotice(w, r, view.DetailHref(product.ID, ""), view.NoticeSelectSize)
			return
		}
		if err != nil {
			p.writeError(w, r, e.Wrap(op, err))
			return
		}
		back = view.DetailHref(product.ID, size)
	} else {
		size = ""
	}

	item, err := p.cart.AddItem(r.Context(), visitorID, product, size)
	if err != nil {
		p.writeError(w, r, e.Wrap(op, err))
		return
	}

	p.logger.Debugf("Item added to cart, visitor: %s, product: %s, size: %q, quantity: %d", visitorID, item.ID, item.Size, item.Quantity)
	redirectWithNotice(w, r, back, view.NoticeAdded)
}

// detailSize проверяет размер, выбранный на странице товара.
func detailSize(product *domain.Product, size string) (string, error) {
	if !product.HasSizes() {
		return "", nil
	}

	if size == "" {
		return "", e.ErrSizeRequired
	}

	if !product.OffersSize(size) {
		return "", e.Wrap(whereami.WhereAmI(), e.ErrUnknownSize)
	}

	return size, nil
}

func (p *PageHandler) cartPage(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := p.visitor(w, r)
	if !ok {
		return
	}

	cart, err := p.cart.ReadCart(r.Context(), visitorID)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	v := view.RenderCart(cart)
	data := p.newPage(r, "Cart")
	data.View = v
	data.Forms = formsFor(v.Bindings)
	p.render(w, http.StatusOK, tmplCart, data)
}

func (p *PageHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "PageHandler.setQuantity"

	visitorID, ok := p.visitor(w, r)
	if !ok {
		return
	}

	idx, err := parseIndex(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	if err := parseForm(w, r); err != nil {
		p.writeError(w, r, err)
		return
	}

	qty, err := parseQuantity(r.PostForm.Get("quantity"))
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	if err := p.cart.SetQuantity(r.Context(), visitorID, idx, qty); err != nil {
		p.writeError(w, r, e.Wrap(op, err))
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (p *PageHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	const op = "PageHandler.removeItem"

	visitorID, ok := p.visitor(w, r)
	if !ok {
		return
	}

	idx, err := parseIndex(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	if err := p.cart.RemoveItem(r.Context(), visitorID, idx); err != nil {
		p.writeError(w, r, e.Wrap(op, err))
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (p *PageHandler) checkoutPage(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := p.visitor(w, r)
	if !ok {
		return
	}

	p.renderCheckout(w, r, visitorID, http.StatusOK, nil)
}

// placeOrder принимает платёжную форму. При незаполненных полях страница
// возвращается с 422 и списком полей, корзина не меняется.
func (p *PageHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	const op = "PageHandler.placeOrder"

	visitorID, ok := p.visitor(w, r)
	if !ok {
		return
	}

	if err := parseForm(w, r); err != nil {
		p.writeError(w, r, err)
		return
	}

	details := usecase.NewPaymentDetails(
		r.PostForm.Get(usecase.FieldCardNumber),
		r.PostForm.Get(usecase.FieldExpiration),
		r.PostForm.Get(usecase.FieldSecurity),
	)

	order, err := p.checkout.PlaceOrder(r.Context(), visitorID, details)
	if err != nil {
		var vErr *usecase.ValidationError
		if errors.As(err, &vErr) {
			p.logger.Debugf("Checkout rejected, visitor: %s, missing: %v", visitorID, vErr.Missing)
			p.renderCheckout(w, r, visitorID, http.StatusUnprocessableEntity, vErr.Missing)
			return
		}

		p.writeError(w, r, e.Wrap(op, err))
		return
	}

	p.logger.Debugf("Checkout completed, visitor: %s, order: %s", visitorID, order.ID)
	http.Redirect(w, r, "/confirmation", http.StatusSeeOther)
}

func (p *PageHandler) renderCheckout(w http.ResponseWriter, r *http.Request, visitorID string, status int, missing []string) {
	cart, err := p.cart.ReadCart(r.Context(), visitorID)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	v := view.RenderCheckout(cart)
	data := p.newPage(r, "Checkout")
	data.View = v
	data.Forms = formsFor(v.Bindings)
	if len(missing) > 0 {
		data.Notice = view.NoticePaymentDetails.Message()
		data.Missing = missing
	}

	p.render(w, status, tmplCheckout, data)
}

func (p *PageHandler) confirmation(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := p.visitor(w, r)
	if !ok {
		return
	}

	total, found, err := p.cart.TakeOrderTotal(r.Context(), visitorID)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	data := p.newPage(r, "Order confirmed")
	data.View = view.RenderConfirmation(total, found)
	p.render(w, http.StatusOK, tmplConfirmation, data)
}

func (p *PageHandler) healthz(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (p *PageHandler) notFound(w http.ResponseWriter, r *http.Request) {
	data := p.newPage(r, "Not found")
	data.Status = http.StatusNotFound
	data.Message = "Page not found."
	p.render(w, http.StatusNotFound, tmplError, data)
}

// newPage заполняет общие поля страницы, включая уведомление из параметра notice.
func (p *PageHandler) newPage(r *http.Request, title string) *pageData {
	return &pageData{
		Title:  title,
		Notice: view.Notice(r.URL.Query().Get("notice")).Message(),
	}
}

// renderFailure подставляет сообщение об ошибке загрузки каталога во все области страницы.
func (p *PageHandler) renderFailure(w http.ResponseWriter, name string, page view.Page, data *pageData, err error) {
	p.logger.Warnf("Catalog fetch failed, page: %s, error: %v", page, err)

	failure := view.RenderFailure(page)
	data.Failure = &failure
	data.Banner = failure.Banner

	status, _ := ToHTTPResponse(err)
	p.render(w, status, name, data)
}

func (p *PageHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := ToHTTPResponse(err)
	if status >= http.StatusInternalServerError {
		p.logger.Errorf(err, "%s %s failed", r.Method, r.URL.Path)
	} else {
		p.logger.Warnf("%d %s %s: %v", status, r.Method, r.URL.Path, err)
	}

	data := p.newPage(r, http.StatusText(status))
	data.Status = status
	data.Message = msg
	p.render(w, status, tmplError, data)
}

func (p *PageHandler) render(w http.ResponseWriter, status int, name string, data *pageData) {
	if err := p.tmpl.render(w, status, name, data); err != nil {
		p.logger.Errorf(err, "failed to render page %s", name)
		http.Error(w, view.MsgGenericFailure, http.StatusInternalServerError)
	}
}

// visitor возвращает идентификатор посетителя; без него обработка невозможна.
func (p *PageHandler) visitor(w http.ResponseWriter, r *http.Request) (string, bool) {
	visitorID, ok := VisitorFromCtx(r.Context())
	if !ok {
		p.writeError(w, r, e.Wrap(whereami.WhereAmI(), e.ErrInternalServerError))
		return "", false
	}

	return visitorID, true
}
