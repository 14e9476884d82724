package minhareceita

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://minhareceita.org"

var (
	ErrNotFound = errors.New("not found")
)

type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{http: client}
}

func (c *Client) GetByCNPJ(ctx context.Context, cnpj string) (*Company, error) {
	var company companyResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("cnpj", cnpj).
		SetResult(&company).
		Get("/{cnpj}")
	if err != nil {
		return nil, fmt.Errorf("minhareceita request failed: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("minhareceita failed with status code: %d", resp.StatusCode())
	}
	return company.ToDomain(), nil
}
