package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var (
	ErrInvalidCredentials = errors.New("portal rejected the credentials")
	ErrSessionExpired     = errors.New("portal session is invalid or expired")
	ErrStudentNotFound    = errors.New("portal has no record for the student")
)

// Client is a scraping session against the legacy registry portal. The
// portal only speaks server-rendered HTML behind a cookie login, so every
// read is a page fetch plus a parse.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	jar, _ := cookiejar.New(nil)

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetCookieJar(jar).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Login loads the login page, lifts the form action and hidden state token
// out of it, and posts the credentials the way a browser would.
func (c *Client) Login(ctx context.Context, username, password string) error {
	resp, err := c.http.R().SetContext(ctx).Get("/index.php?r=site/login")
	if err != nil {
		return fmt.Errorf("load login page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return fmt.Errorf("parse login page: %w", err)
	}

	action, exists := doc.Find("form#login-form").Attr("action")
	if !exists {
		return fmt.Errorf("login form not found on login page")
	}

	payload := url.Values{}
	payload.Set("LoginForm[username]", username)
	payload.Set("LoginForm[password]", password)
	if token, ok := doc.Find("input[name='YII_CSRF_TOKEN']").Attr("value"); ok {
		payload.Set("YII_CSRF_TOKEN", token)
	}

	resp, err = c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetHeader("Referer", c.baseURL+"/index.php?r=site/login").
		SetBody(payload.Encode()).
		Post(action)
	if err != nil {
		return fmt.Errorf("submit login: %w", err)
	}

	body := resp.String()
	if strings.Contains(body, "Incorrect username or password") {
		return ErrInvalidCredentials
	}

	c.logger.Info("Portal login succeeded", "username", username)
	return nil
}

// FetchStudent loads and parses one student's full academic record page.
func (c *Client) FetchStudent(ctx context.Context, studentNo string) (*StudentRecord, error) {
	doc, err := c.fetchDocument(ctx, "/index.php?r=student/academic&no="+url.QueryEscape(studentNo))
	if err != nil {
		return nil, err
	}

	record, err := ParseStudentDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("parse academic record for %s: %w", studentNo, err)
	}
	if record.StudentNo == "" {
		return nil, ErrStudentNotFound
	}
	return record, nil
}

// FetchStructure loads and parses one program structure's required modules.
func (c *Client) FetchStructure(ctx context.Context, structureCode string) (*StructureRecord, error) {
	doc, err := c.fetchDocument(ctx, "/index.php?r=structure/view&code="+url.QueryEscape(structureCode))
	if err != nil {
		return nil, err
	}
	return ParseStructureDocument(doc)
}

func (c *Client) fetchDocument(ctx context.Context, path string) (*goquery.Document, error) {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode(), path)
	}

	body := resp.String()
	if strings.Contains(body, "Your session has expired") || strings.Contains(body, "id=\"login-form\"") {
		return nil, ErrSessionExpired
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
