// Package client provides a Go client for the expense backend API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client accesses the expense backend API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// New returns a client for the API at baseURL.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    http.DefaultClient,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Expenses returns all expenses, most recent first.
func (c *Client) Expenses(ctx context.Context) ([]Expense, error) {
	var expenses []Expense
	err := c.get(ctx, "/expenses", &expenses)
	return expenses, err
}

// Add creates a new expense.
func (c *Client) Add(ctx context.Context, expense ExpenseRequest) (Expense, error) {
	body, err := json.Marshal(expense)
	if err != nil {
		return Expense{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/expenses", bytes.NewReader(body))
	if err != nil {
		return Expense{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var created Expense
	err = c.do(req, http.StatusCreated, &created)
	return created, err
}

// Delete deletes the expense with the given ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/expenses/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	return c.do(req, http.StatusNoContent, nil)
}

// UploadCSV imports expenses from a CSV file.
func (c *Client) UploadCSV(ctx context.Context, fileName string, file io.Reader) (ImportResult, error) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return ImportResult{}, err
	}

	if _, err := io.Copy(w, file); err != nil {
		return ImportResult{}, err
	}

	if err := mw.Close(); err != nil {
		return ImportResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/expenses/upload-csv", body)
	if err != nil {
		return ImportResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result ImportResult
	err = c.do(req, http.StatusOK, &result)
	return result, err
}

// Anomalies returns all expenses currently flagged as anomalous.
func (c *Client) Anomalies(ctx context.Context) ([]Expense, error) {
	var expenses []Expense
	err := c.get(ctx, "/expenses/anomalies", &expenses)
	return expenses, err
}

// Dashboard returns the aggregate view for one month. Zero values for
// year and month default to the current date on the server.
func (c *Client) Dashboard(ctx context.Context, year int, month int) (DashboardData, error) {
	query := url.Values{}
	if year != 0 {
		query.Set("year", strconv.Itoa(year))
	}
	if month != 0 {
		query.Set("month", strconv.Itoa(month))
	}

	path := "/expenses/dashboard"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var dashboard DashboardData
	err := c.get(ctx, path, &dashboard)
	return dashboard, err
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	return c.do(req, http.StatusOK, target)
}

// do executes the request and decodes the response into target. A
// response with an unexpected status is returned as an error, using the
// server's error message when there is one.
func (c *Client) do(req *http.Request, expectedStatus int, target any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != expectedStatus {
		var apiError Error
		if err := json.Unmarshal(body, &apiError); err == nil && apiError.Message != "" {
			apiError.StatusCode = res.StatusCode
			return apiError
		}

		return fmt.Errorf("unexpected status %d for %s %s", res.StatusCode, req.Method, req.URL.Path)
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(body, target)
}

// Error is an error response from the API.
type Error struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e Error) Error() string {
	return e.Message
}
