package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shitiandmw/e-commerce-sub001/config"
	"github.com/shitiandmw/e-commerce-sub001/models"
)

// ErrNotFound is returned when the commerce API reports 404 for a resource.
var ErrNotFound = errors.New("resource not found")

// Expanded fields requested from the commerce API. The upstream field
// expansion syntax is comma-prefixed: the leading comma appends to the
// default field set instead of replacing it.
const (
	orderFields    = ",items,items.variant,customer"
	productFields  = ",brand,categories"
	customerFields = ",created_at"
)

// CommerceClient is the shared fetch wrapper for the commerce platform's
// admin REST API. It owns auth headers, pagination, and the normalization of
// partially-populated upstream payloads into the guaranteed internal models.
type CommerceClient struct {
	baseURL  string
	apiToken string
	pageSize int
	fetchCap int
	client   *http.Client
}

// NewCommerceClient creates a client from environment-derived config.
func NewCommerceClient(cfg config.CommerceConfig) *CommerceClient {
	return &CommerceClient{
		baseURL:  cfg.BaseURL,
		apiToken: cfg.APIToken,
		pageSize: cfg.PageSize,
		fetchCap: cfg.FetchCap,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// ---- raw upstream shapes ----------------------------------------------------
// These mirror the commerce API responses, optional fields and all. They never
// leave this file: every fetch normalizes into models.* before returning.

type rawOrderList struct {
	Orders []rawOrder `json:"orders"`
	Count  int        `json:"count"`
}

type rawOrder struct {
	ID           string        `json:"id"`
	CreatedAt    time.Time     `json:"created_at"`
	Total        int64         `json:"total"`
	CurrencyCode string        `json:"currency_code"`
	CustomerID   *string       `json:"customer_id"`
	Customer     *rawCustomer  `json:"customer"`
	Items        []rawLineItem `json:"items"`
}

type rawLineItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice *int64  `json:"unit_price"`
	Total     *int64  `json:"total"`
	ProductID *string `json:"product_id"`
}

type rawProductList struct {
	Products []rawProduct `json:"products"`
	Count    int          `json:"count"`
}

type rawProduct struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Brand       *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"brand"`
	Categories []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"categories"`
}

type rawProductDetail struct {
	Product rawProduct `json:"product"`
}

type rawCustomerList struct {
	Customers []rawCustomer `json:"customers"`
	Count     int           `json:"count"`
}

type rawCustomer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

type rawCategoryList struct {
	ProductCategories []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"product_categories"`
	Count int `json:"count"`
}

// ---- normalization ----------------------------------------------------------

func normalizeOrder(ro rawOrder) models.Order {
	order := models.Order{
		ID:           ro.ID,
		CreatedAt:    ro.CreatedAt,
		Total:        ro.Total,
		CurrencyCode: ro.CurrencyCode,
		Items:        make([]models.OrderItem, 0, len(ro.Items)),
	}
	if ro.CustomerID != nil {
		order.CustomerID = *ro.CustomerID
	} else if ro.Customer != nil {
		order.CustomerID = ro.Customer.ID
	}
	for _, ri := range ro.Items {
		item := models.OrderItem{
			Title:    ri.Title,
			Quantity: ri.Quantity,
		}
		if ri.UnitPrice != nil {
			item.UnitPrice = *ri.UnitPrice
		}
		// Line revenue resolves here, while the pointer still distinguishes
		// a server-sent zero total (fully discounted) from an absent one.
		if ri.Total != nil {
			item.Revenue = *ri.Total
		} else {
			item.Revenue = item.UnitPrice * int64(ri.Quantity)
		}
		if ri.ProductID != nil {
			item.ProductID = *ri.ProductID
		}
		order.Items = append(order.Items, item)
	}
	return order
}

func normalizeProduct(rp rawProduct) models.Product {
	product := models.Product{
		ID:          rp.ID,
		Title:       rp.Title,
		Description: rp.Description,
		Thumbnail:   rp.Thumbnail,
		Status:      rp.Status,
		CreatedAt:   rp.CreatedAt,
		Categories:  make([]models.ProductCategory, 0, len(rp.Categories)),
	}
	if rp.Brand != nil {
		product.BrandID = rp.Brand.ID
		product.BrandName = rp.Brand.Name
	}
	for _, rc := range rp.Categories {
		product.Categories = append(product.Categories, models.ProductCategory{ID: rc.ID, Name: rc.Name})
	}
	return product
}

func normalizeCustomer(rc rawCustomer) models.Customer {
	return models.Customer{
		ID:        rc.ID,
		Email:     rc.Email,
		FirstName: rc.FirstName,
		LastName:  rc.LastName,
		CreatedAt: rc.CreatedAt,
	}
}

// ---- transport --------------------------------------------------------------

func (c *CommerceClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[commerce] api returned status %d for %s: %s", resp.StatusCode, path, string(body))
		return fmt.Errorf("commerce api error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *CommerceClient) pageQuery(offset int, fields string) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("order", "created_at")
	q.Set("fields", fields)
	return q
}

// ---- paginated fetchers ------------------------------------------------------
// Each pages sequentially through one resource, accumulating until the
// server-reported count is exhausted or the fetch cap is reached. Any page
// failure fails the whole fetch; there are no partial results.

// ListAllOrders fetches every order visible under the fetch cap, with line
// items and customer reference expanded.
func (c *CommerceClient) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	var all []models.Order
	offset := 0
	for {
		var page rawOrderList
		if err := c.getJSON(ctx, "/admin/orders", c.pageQuery(offset, orderFields), &page); err != nil {
			return nil, fmt.Errorf("orders page at offset %d: %w", offset, err)
		}
		for _, ro := range page.Orders {
			all = append(all, normalizeOrder(ro))
		}
		offset += len(page.Orders)
		if len(page.Orders) == 0 || offset >= page.Count {
			break
		}
		if offset >= c.fetchCap {
			log.Printf("[commerce.orders] WARN fetch cap %d reached, server reports %d orders, analytics will be truncated", c.fetchCap, page.Count)
			break
		}
	}
	return all, nil
}

// ListAllProducts fetches every product visible under the fetch cap, with
// brand and categories expanded.
func (c *CommerceClient) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	var all []models.Product
	offset := 0
	for {
		var page rawProductList
		if err := c.getJSON(ctx, "/admin/products", c.pageQuery(offset, productFields), &page); err != nil {
			return nil, fmt.Errorf("products page at offset %d: %w", offset, err)
		}
		for _, rp := range page.Products {
			all = append(all, normalizeProduct(rp))
		}
		offset += len(page.Products)
		if len(page.Products) == 0 || offset >= page.Count {
			break
		}
		if offset >= c.fetchCap {
			log.Printf("[commerce.products] WARN fetch cap %d reached, server reports %d products, analytics will be truncated", c.fetchCap, page.Count)
			break
		}
	}
	return all, nil
}

// ListAllCustomers fetches every customer visible under the fetch cap.
func (c *CommerceClient) ListAllCustomers(ctx context.Context) ([]models.Customer, error) {
	var all []models.Customer
	offset := 0
	for {
		var page rawCustomerList
		if err := c.getJSON(ctx, "/admin/customers", c.pageQuery(offset, customerFields), &page); err != nil {
			return nil, fmt.Errorf("customers page at offset %d: %w", offset, err)
		}
		for _, rc := range page.Customers {
			all = append(all, normalizeCustomer(rc))
		}
		offset += len(page.Customers)
		if len(page.Customers) == 0 || offset >= page.Count {
			break
		}
		if offset >= c.fetchCap {
			log.Printf("[commerce.customers] WARN fetch cap %d reached, server reports %d customers, analytics will be truncated", c.fetchCap, page.Count)
			break
		}
	}
	return all, nil
}

// ---- single-page passthrough (storefront) ------------------------------------

// ListProductsPage fetches one page of products for the storefront, with an
// optional search term passed through to the upstream API.
func (c *CommerceClient) ListProductsPage(ctx context.Context, limit, offset int, search string) ([]models.Product, int, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("fields", productFields)
	if search != "" {
		q.Set("q", search)
	}

	var page rawProductList
	if err := c.getJSON(ctx, "/admin/products", q, &page); err != nil {
		return nil, 0, err
	}
	products := make([]models.Product, 0, len(page.Products))
	for _, rp := range page.Products {
		products = append(products, normalizeProduct(rp))
	}
	return products, page.Count, nil
}

// GetProduct fetches a single product by upstream id.
func (c *CommerceClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	q := url.Values{}
	q.Set("fields", productFields)

	var detail rawProductDetail
	if err := c.getJSON(ctx, "/admin/products/"+id, q, &detail); err != nil {
		return nil, err
	}
	product := normalizeProduct(detail.Product)
	return &product, nil
}

// ListCategoriesPage fetches one page of product categories.
func (c *CommerceClient) ListCategoriesPage(ctx context.Context, limit, offset int) ([]models.ProductCategory, int, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var page rawCategoryList
	if err := c.getJSON(ctx, "/admin/product-categories", q, &page); err != nil {
		return nil, 0, err
	}
	categories := make([]models.ProductCategory, 0, len(page.ProductCategories))
	for _, rc := range page.ProductCategories {
		categories = append(categories, models.ProductCategory{ID: rc.ID, Name: rc.Name})
	}
	return categories, page.Count, nil
}
