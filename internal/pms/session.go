package pms

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"ota-report-backend/config"
)

const (
	loginPath       = "/login"
	reservationPath = "/app/Reservation"
	calendarPath    = "/app/calendar"
)

// Session is the authenticated state produced by Login. It is a plain value:
// callers thread it through every subsequent fetch, so two concurrent crawls
// never share or overwrite each other's cookie.
type Session struct {
	Cookie           string    `json:"cookies"`
	Status           int       `json:"status"`
	RedirectLocation string    `json:"redirectLocation,omitempty"`
	IssuedAt         time.Time `json:"-"`
}

// Client talks to the PMS's server-rendered pages. Two underlying HTTP
// clients are kept: page requests follow redirects like a browser, while the
// login POST must capture the 302 instead of following it.
type Client struct {
	page    *resty.Client
	login   *resty.Client
	baseURL string
}

// NewClient builds a PMS client from the upstream configuration.
func NewClient(cfg *config.UpstreamConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	browserHeaders := map[string]string{
		"User-Agent":      cfg.UserAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9,vi;q=0.8",
		"Cache-Control":   "no-cache",
	}

	page := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeaders(browserHeaders).
		SetCookieJar(nil) // cookies are managed explicitly via Session

	login := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeaders(browserHeaders).
		SetCookieJar(nil)
	// Capture the post-login 302 instead of following it; the redirect is the
	// PMS's success signal.
	login.GetClient().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &Client{page: page, login: login, baseURL: cfg.BaseURL}
}

// hiddenFields are the ASP.NET anti-forgery values the login form round-trips.
type hiddenFields struct {
	ViewState          string
	ViewStateGenerator string
	EventValidation    string
}

// extractHiddenFields pulls the three well-known hidden inputs out of the
// login page. A missing field becomes an empty string; the PMS omits some of
// them in certain states and the POST still goes through.
func extractHiddenFields(html string) hiddenFields {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return hiddenFields{}
	}
	value := func(name string) string {
		v, _ := doc.Find(`input[name="` + name + `"]`).First().Attr("value")
		return v
	}
	return hiddenFields{
		ViewState:          value("__VIEWSTATE"),
		ViewStateGenerator: value("__VIEWSTATEGENERATOR"),
		EventValidation:    value("__EVENTVALIDATION"),
	}
}

// joinCookies renders Set-Cookie values as a Cookie header string.
func joinCookies(cookies []*http.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; ")
}

// Login performs the two-step handshake: GET the login page for the pre-auth
// cookie and hidden fields, then POST the credentials. A redirect response is
// treated as success; the PMS signals a good login by redirecting, and there
// is no reliable marker to verify beyond that.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	pageResp, err := c.page.R().
		SetContext(ctx).
		Get(loginPath)
	if err != nil {
		return Session{}, &AuthError{Err: err}
	}

	preAuth := joinCookies(pageResp.Cookies())
	fields := extractHiddenFields(pageResp.String())

	form := map[string]string{
		"__EVENTTARGET":        "lkLogin",
		"__EVENTARGUMENT":      "",
		"__VIEWSTATE":          fields.ViewState,
		"__VIEWSTATEGENERATOR": fields.ViewStateGenerator,
		"__EVENTVALIDATION":    fields.EventValidation,
		"ddlLangCode":          "vi-VN",
		"txtEmail":             email,
		"txtPassword":          password,
	}

	loginResp, err := c.login.R().
		SetContext(ctx).
		SetHeader("Origin", c.baseURL).
		SetHeader("Referer", c.baseURL+loginPath).
		SetHeader("Cookie", preAuth).
		SetFormData(form).
		Post(loginPath)
	if err != nil {
		return Session{}, &AuthError{Err: err}
	}

	status := loginResp.StatusCode()
	if status < 200 || status >= 400 {
		return Session{}, &AuthError{Status: status, Body: truncateBody(loginResp.String())}
	}

	// Replace the cookie wholesale when new ones arrive; the PMS reissues the
	// whole session rather than adding to it.
	cookie := preAuth
	if post := joinCookies(loginResp.Cookies()); post != "" {
		cookie = post
	}

	return Session{
		Cookie:           cookie,
		Status:           status,
		RedirectLocation: loginResp.Header().Get("Location"),
		IssuedAt:         time.Now(),
	}, nil
}

// ReportQuery selects one page of the reservation report.
type ReportQuery struct {
	TypeSeachDate int
	FromDate      string
	ToDate        string
	RoomType      int
	Page          int
}

// FetchReportPage retrieves one rendered report page as HTML.
func (c *Client) FetchReportPage(ctx context.Context, sess Session, q ReportQuery) (string, error) {
	resp, err := c.page.R().
		SetContext(ctx).
		SetHeader("Cookie", sess.Cookie).
		SetHeader("Referer", c.baseURL+"/").
		SetQueryParams(map[string]string{
			"TypeSeachDate":     strconv.Itoa(q.TypeSeachDate),
			"FromDate":          q.FromDate,
			"ToDate":            q.ToDate,
			"RoomType":          strconv.Itoa(q.RoomType),
			"RoomDetail":        "",
			"SourceType":        "",
			"Source":            "",
			"Status":            "1,0,3,4,2",
			"Seach":             "",
			"IsExtensionFilder": "true",
			"p":                 strconv.Itoa(q.Page),
		}).
		Get(reservationPath)
	if err != nil {
		return "", &TransportError{Op: "fetch report page", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &TransportError{Op: "fetch report page", Err: statusError(resp.StatusCode())}
	}
	return resp.String(), nil
}

// FetchCalendarPage retrieves the rendered calendar page as HTML.
func (c *Client) FetchCalendarPage(ctx context.Context, sess Session) (string, error) {
	resp, err := c.page.R().
		SetContext(ctx).
		SetHeader("Cookie", sess.Cookie).
		Get(calendarPath)
	if err != nil {
		return "", &TransportError{Op: "fetch calendar page", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &TransportError{Op: "fetch calendar page", Err: statusError(resp.StatusCode())}
	}
	return resp.String(), nil
}

type statusError int

func (e statusError) Error() string {
	return "unexpected status " + strconv.Itoa(int(e))
}
