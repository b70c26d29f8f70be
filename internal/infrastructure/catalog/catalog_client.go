package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
)

// Client - клиент внешнего каталога товаров. Один GET на вызов, без повторов и кэша.
type Client struct {
	http         *http.Client
	cfg          *cfg.CatalogCfg
	maxBodyBytes int64
	logger       logger.Logger
}

func NewClient(httpClient *http.Client, cfg *cfg.CatalogCfg, logger logger.Logger) *Client {
	const defaultMaxBodyBytes = 8 << 20

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		http:         httpClient,
		cfg:          cfg,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// FetchCatalog загружает каталог и проверяет каждую запись.
// Любая некорректная запись делает весь ответ ошибочным (e.ErrMalformedCatalog).
func (c *Client) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogClient.FetchCatalog"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: %v", e.ErrCatalogUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Дочитываем тело, чтобы соединение вернулось в пул
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, e.Wrap(op, fmt.Errorf("%w: status %d", e.ErrCatalogUnavailable, resp.StatusCode))
	}

	var payload catalogResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, c.maxBodyBytes)).Decode(&payload); err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: %v", e.ErrMalformedCatalog, err))
	}

	products, err := toDomainProducts(payload.Data)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	c.logger.Debugf("Catalog fetched, products: %d", len(products))
	return products, nil
}

// toDomainProducts проверяет записи каталога и преобразует их в доменные товары.
func toDomainProducts(models []productModel) ([]domain.Product, error) {
	if models == nil {
		return nil, fmt.Errorf("%w: missing data field", e.ErrMalformedCatalog)
	}

	products := make([]domain.Product, 0, len(models))
	seen := make(map[string]struct{}, len(models))
	for i, m := range models {
		if err := validateProduct(m); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", e.ErrMalformedCatalog, i, err)
		}

		if _, dup := seen[m.ID]; dup {
			return nil, fmt.Errorf("%w: entry %d: duplicate id %q", e.ErrMalformedCatalog, i, m.ID)
		}
		seen[m.ID] = struct{}{}

		products = append(products, toDomainProduct(m))
	}

	return products, nil
}

func validateProduct(m productModel) error {
	switch {
	case strings.TrimSpace(m.ID) == "":
		return fmt.Errorf("empty id")
	case strings.TrimSpace(m.Title) == "":
		return fmt.Errorf("product %s: empty title", m.ID)
	case !m.Price.Valid:
		return fmt.Errorf("product %s: missing price", m.ID)
	case m.Price.Decimal.IsNegative():
		return fmt.Errorf("product %s: negative price", m.ID)
	}

	for _, size := range m.Sizes {
		if strings.TrimSpace(size) == "" {
			return fmt.Errorf("product %s: empty size", m.ID)
		}
	}

	return nil
}

func toDomainProduct(m productModel) domain.Product {
	var image domain.Image
	if m.Image != nil {
		image = domain.NewImage(m.Image.URL, m.Image.Alt)
	}

	sizes := make([]string, len(m.Sizes))
	copy(sizes, m.Sizes)

	return domain.Product{
		ID:          m.ID,
		Title:       m.Title,
		Price:       m.Price.Decimal,
		Image:       image,
		Description: m.Description,
		Gender:      domain.Gender(m.Gender),
		Sizes:       sizes,
		BaseColor:   m.BaseColor,
	}
}
