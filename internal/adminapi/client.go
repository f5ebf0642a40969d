// Package adminapi talks to the remote fitness REST API on behalf of a
// dashboard session.
package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dancerfit/admin-dashboard/internal/logger"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 64 << 10

// Options configures a Client.
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client       // nil means a client with Timeout
	Timeout     time.Duration      // zero means no timeout
	Credentials CredentialProvider // nil for unauthenticated use
	Dialect     TypeDialect
	Logger      *logger.Logger
}

// Client is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	creds   CredentialProvider
	dialect TypeDialect
	log     *logger.Logger
}

func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	dialect := opts.Dialect
	if dialect == "" {
		dialect = DialectOnDemand
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Client{base: base, http: hc, creds: opts.Credentials, dialect: dialect, log: log}, nil
}

// WithCredentials returns a copy of c that authenticates with creds.
func (c *Client) WithCredentials(creds CredentialProvider) *Client {
	cp := *c
	cp.creds = creds
	return &cp
}

type call struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	auth        bool
}

func jsonCall(method, path string, payload any, auth bool) (call, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return call{}, fmt.Errorf("encode %s body: %w", path, err)
	}
	return call{method: method, path: path, body: bytes.NewReader(b), contentType: "application/json", auth: auth}, nil
}

// do sends cl and decodes a 2xx JSON body into out when out is non-nil.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(cl.path, "/")
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	// The transport closes the body once Do is called; before that it's ours.
	abort := func(err error) error {
		if rc, ok := cl.body.(io.Closer); ok {
			rc.Close()
		}
		return err
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), cl.body)
	if err != nil {
		return abort(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if cl.auth {
		if c.creds == nil {
			return abort(ErrNoCredentials)
		}
		token, err := c.creds.Token(ctx)
		if err != nil {
			return abort(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s %s: %w", ErrTransport, cl.method, cl.path, ctxErr)
		}
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, cl.method, cl.path, err)
	}
	defer resp.Body.Close()
	c.log.Debug("remote api call", "method", cl.method, "path", cl.path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, cl.method, cl.path, err)
	}
	return nil
}

func readError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &Error{Status: resp.StatusCode, Body: string(raw)}
	var body messageBody
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
