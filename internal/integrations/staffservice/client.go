package staffservice

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

// Client клиент сервиса сотрудников
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewClient создает новый клиент сервиса сотрудников
func NewClient(baseURL string, timeout time.Duration, logger Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetDaySchedule получает расписание сотрудника на дату (формат даты 2006-01-02)
func (c *Client) GetDaySchedule(ctx context.Context, companyID, staffID int64, date string) (*DaySchedule, error) {
	url := fmt.Sprintf("%s/api/v1/companies/%d/staff/%d/schedule?date=%s", c.baseURL, companyID, staffID, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("staffservice: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("[StaffService] Request failed: staffID=%d, date=%s, error=%v", staffID, date, err)
		return nil, fmt.Errorf("staffservice: do request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var schedule DaySchedule
		if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
			return nil, fmt.Errorf("%w: decode schedule: %v", ErrInvalidResponse, err)
		}
		for _, iv := range schedule.WorkIntervals {
			if err := iv.Start.Validate(); err != nil {
				return nil, fmt.Errorf("%w: work interval start: %v", ErrInvalidResponse, err)
			}
			if err := iv.End.Validate(); err != nil {
				return nil, fmt.Errorf("%w: work interval end: %v", ErrInvalidResponse, err)
			}
		}
		c.logger.Debug("[StaffService] Got schedule: staffID=%d, date=%s, working=%t", staffID, date, schedule.IsWorking)
		return &schedule, nil
	case http.StatusNotFound:
		return nil, ErrStaffNotFound
	default:
		c.logger.Error("[StaffService] Unexpected status: staffID=%d, date=%s, status=%d", staffID, date, resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrInternal, resp.StatusCode)
	}
}
