package companyservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

// Client клиент сервиса компаний
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewClient создает новый клиент сервиса компаний
func NewClient(baseURL string, timeout time.Duration, logger Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetCompany получает компанию по ID
func (c *Client) GetCompany(ctx context.Context, companyID int64) (*Company, error) {
	url := fmt.Sprintf("%s/api/v1/companies/%d", c.baseURL, companyID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("companyservice: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("[CompanyService] Request failed: companyID=%d, error=%v", companyID, err)
		return nil, fmt.Errorf("companyservice: do request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var company Company
		if err := json.NewDecoder(resp.Body).Decode(&company); err != nil {
			return nil, fmt.Errorf("%w: decode company: %v", ErrInvalidResponse, err)
		}
		c.logger.Debug("[CompanyService] Got company: companyID=%d", companyID)
		return &company, nil
	case http.StatusNotFound:
		return nil, ErrCompanyNotFound
	default:
		c.logger.Error("[CompanyService] Unexpected status: companyID=%d, status=%d", companyID, resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrInternal, resp.StatusCode)
	}
}

// GetService получает услугу компании по ID
func (c *Client) GetService(ctx context.Context, companyID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/api/v1/companies/%d/services/%d", c.baseURL, companyID, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("companyservice: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("[CompanyService] Request failed: companyID=%d, serviceID=%d, error=%v", companyID, serviceID, err)
		return nil, fmt.Errorf("companyservice: do request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var service Service
		if err := json.NewDecoder(resp.Body).Decode(&service); err != nil {
			return nil, fmt.Errorf("%w: decode service: %v", ErrInvalidResponse, err)
		}
		if service.DurationMin <= 0 || service.Capacity <= 0 {
			return nil, fmt.Errorf("%w: service has no duration or capacity", ErrInvalidResponse)
		}
		c.logger.Debug("[CompanyService] Got service: companyID=%d, serviceID=%d", companyID, serviceID)
		return &service, nil
	case http.StatusNotFound:
		return nil, ErrServiceNotFound
	default:
		c.logger.Error("[CompanyService] Unexpected status: companyID=%d, serviceID=%d, status=%d", companyID, serviceID, resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrInternal, resp.StatusCode)
	}
}
