// internal/infra/practicum/client.go
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// Client queries the homework statuses endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     *logrus.Entry
	now        func() time.Time
}

func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Entry) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		token:      token,
		logger:     logger,
		now:        time.Now,
	}
}

// GetHomeworkStatuses returns the decoded JSON body for homeworks updated since
// fromDate (Unix seconds). A zero fromDate means "now".
// Numbers in the result are json.Number.
func (c *Client) GetHomeworkStatuses(ctx context.Context, fromDate int64) (any, error) {
	if fromDate == 0 {
		fromDate = c.now().Unix()
	}
	logCtx := c.logger.WithField("from_date", fromDate)

	u, err := url.Parse(c.endpoint)
	if err != nil {
		logCtx.WithError(err).Error("Invalid homework API endpoint")
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		logCtx.WithError(err).Error("Failed to build homework API request")
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logCtx.WithError(err).Error("Homework API request failed")
		return nil, fmt.Errorf("%w: %v", homework.ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logCtx.WithField("status_code", resp.StatusCode).Error("Homework API is not responding")
		return nil, fmt.Errorf("%w: status code %d", homework.ErrServerUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logCtx.WithError(err).Error("Failed to read homework API response")
		return nil, fmt.Errorf("%w: %v", homework.ErrServerUnavailable, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		logCtx.Info("Homework API returned an empty body")
		return nil, homework.ErrNoData
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		logCtx.WithError(err).Error("Homework API returned invalid JSON")
		return nil, fmt.Errorf("%w: %v", homework.ErrMalformedResponse, err)
	}
	logCtx.Debug("Homework API response received")
	return decoded, nil
}
