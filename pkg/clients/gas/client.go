package gas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"prostock/internal/config"
	"prostock/internal/domain/models"
)

// ErrNotConfigured indicates the backend RPC URL is missing; no call can
// succeed until the deployment is reconfigured.
var ErrNotConfigured = errors.New("backend rpc url is not configured, set BACKEND_RPC_URL and restart")

// BackendError carries a business-rule rejection returned by the backend
// (success:false). Its message is surfaced to the operator verbatim.
type BackendError struct {
	Action  string
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected %s", e.Action)
	}
	return e.Message
}

// ConnectivityError signals a transport failure or a non-2xx response. It is
// recoverable by retrying once the backend is reachable again.
type ConnectivityError struct {
	Status int
	Err    error
}

func (e *ConnectivityError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("warehouse backend responded with status %d", e.Status)
	}
	return fmt.Sprintf("cannot reach warehouse backend: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// Client exposes every backend RPC action the application uses. The backend
// is the sole owner of stock arithmetic and audit logging; this client only
// forwards requests and decodes replies.
type Client interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetInventory(ctx context.Context) ([]models.InventoryItem, error)
	SearchItems(ctx context.Context, query string) ([]models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item models.InventoryItem, actor string) error
	DeleteInventoryItem(ctx context.Context, id, actor string) error
	GetSuppliers(ctx context.Context) ([]models.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier models.Supplier, actor string) error
	DeleteSupplier(ctx context.Context, id, actor string) error
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User, actor string) error
	DeleteUser(ctx context.Context, id, actor string) error
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	GetTransactions(ctx context.Context) ([]models.Movement, error)
	GetHistoricalStockReport(ctx context.Context, itemID, startDate, endDate string) (*models.HistoricalStockReport, error)
	GetActivityLogs(ctx context.Context) ([]models.ActivityLog, error)
	SaveTransactionIn(ctx context.Context, tx models.TransactionIn) error
	SaveTransactionOut(ctx context.Context, tx models.TransactionOut) error
	SaveStockOpname(ctx context.Context, op models.StockOpname) error
}

// APIClient is a resty-backed implementation of Client speaking the
// single-endpoint {action, payload} protocol.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a backend RPC client from the provided configuration.
func NewClient(cfg config.BackendConfig) *APIClient {
	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &APIClient{
		httpClient: restyClient,
		url:        cfg.RPCURL,
	}
}

type rpcRequest struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}

type rpcResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// call performs one RPC round trip and decodes the data envelope into out
// when out is non-nil.
func (c *APIClient) call(ctx context.Context, action string, payload any, out any) error {
	if c.url == "" {
		return ErrNotConfigured
	}
	if payload == nil {
		payload = struct{}{}
	}

	result := new(rpcResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(rpcRequest{Action: action, Payload: payload}).
		SetResult(result).
		Post(c.url)
	if err != nil {
		return &ConnectivityError{Err: err}
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return &ConnectivityError{Status: resp.StatusCode()}
	}

	if !result.Success {
		return &BackendError{Action: action, Message: result.Error}
	}

	if out != nil && len(result.Data) > 0 {
		if err := json.Unmarshal(result.Data, out); err != nil {
			return fmt.Errorf("decode %s response: %w", action, err)
		}
	}

	return nil
}

func (c *APIClient) Login(ctx context.Context, username, password string) (*models.User, error) {
	user := new(models.User)
	payload := map[string]string{"username": username, "password": password}
	if err := c.call(ctx, "LOGIN", payload, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *APIClient) GetInventory(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := c.call(ctx, "GET_INVENTORY", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *APIClient) SearchItems(ctx context.Context, query string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := c.call(ctx, "SEARCH_ITEMS", map[string]string{"query": query}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *APIClient) UpdateInventoryItem(ctx context.Context, item models.InventoryItem, actor string) error {
	return c.call(ctx, "UPDATE_ITEM", map[string]any{"item": item, "actor": actor}, nil)
}

func (c *APIClient) DeleteInventoryItem(ctx context.Context, id, actor string) error {
	return c.call(ctx, "DELETE_ITEM", map[string]string{"id": id, "actor": actor}, nil)
}

func (c *APIClient) GetSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := c.call(ctx, "GET_SUPPLIERS", nil, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (c *APIClient) UpdateSupplier(ctx context.Context, supplier models.Supplier, actor string) error {
	return c.call(ctx, "UPDATE_SUPPLIER", map[string]any{"supplier": supplier, "actor": actor}, nil)
}

func (c *APIClient) DeleteSupplier(ctx context.Context, id, actor string) error {
	return c.call(ctx, "DELETE_SUPPLIER", map[string]string{"id": id, "actor": actor}, nil)
}

func (c *APIClient) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.call(ctx, "GET_USERS", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *APIClient) UpdateUser(ctx context.Context, user models.User, actor string) error {
	return c.call(ctx, "UPDATE_USER", map[string]any{"user": user, "actor": actor}, nil)
}

func (c *APIClient) DeleteUser(ctx context.Context, id, actor string) error {
	return c.call(ctx, "DELETE_USER", map[string]string{"id": id, "actor": actor}, nil)
}

func (c *APIClient) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := new(models.DashboardStats)
	if err := c.call(ctx, "GET_DASHBOARD_STATS", nil, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *APIClient) GetTransactions(ctx context.Context) ([]models.Movement, error) {
	var movements []models.Movement
	if err := c.call(ctx, "GET_TRANSACTIONS", nil, &movements); err != nil {
		return nil, err
	}
	return movements, nil
}

func (c *APIClient) GetHistoricalStockReport(ctx context.Context, itemID, startDate, endDate string) (*models.HistoricalStockReport, error) {
	report := new(models.HistoricalStockReport)
	payload := map[string]string{"itemId": itemID, "startDate": startDate, "endDate": endDate}
	if err := c.call(ctx, "GET_HISTORY_REPORT", payload, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (c *APIClient) GetActivityLogs(ctx context.Context) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := c.call(ctx, "GET_LOGS", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *APIClient) SaveTransactionIn(ctx context.Context, tx models.TransactionIn) error {
	return c.call(ctx, "SAVE_STOCK_IN", tx, nil)
}

func (c *APIClient) SaveTransactionOut(ctx context.Context, tx models.TransactionOut) error {
	return c.call(ctx, "SAVE_STOCK_OUT", tx, nil)
}

func (c *APIClient) SaveStockOpname(ctx context.Context, op models.StockOpname) error {
	return c.call(ctx, "SAVE_OPNAME", op, nil)
}
