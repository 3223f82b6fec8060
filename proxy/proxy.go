package proxy

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/castorhq/castor/registry"
)

// Proxy sits in front of an upstream, forwards traffic untouched, and feeds
// JSON bodies that pass the content-type check into the registry.
type Proxy struct {
	reg    *registry.Registry
	rp     *httputil.ReverseProxy
	checks bool
	out    *schemaWriter
}

type Config struct {
	Upstream *url.URL

	// Checks gates observation on an application/json content type. With
	// checks disabled every body is attempted and non-JSON ones are dropped
	// at the parse step.
	Checks bool

	// OutputDir, when set, receives the rendered schema after every
	// observation.
	OutputDir string
}

func New(reg *registry.Registry, cfg Config) *Proxy {
	p := &Proxy{
		reg:    reg,
		checks: cfg.Checks,
		out:    newSchemaWriter(cfg.OutputDir),
	}

	rp := httputil.NewSingleHostReverseProxy(cfg.Upstream)
	rp.ModifyResponse = p.modifyResponse
	p.rp = rp
	return p
}

type captureKey struct{}

// capture carries what modifyResponse needs from the request side of the
// exchange.
type capture struct {
	method  string
	path    string
	host    string
	reqBody []byte
	reqType string
	reqEnc  string
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := &capture{
		method:  r.Method,
		path:    r.URL.Path,
		host:    r.Host,
		reqType: r.Header.Get("Content-Type"),
		reqEnc:  r.Header.Get("Content-Encoding"),
	}

	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			slog.Warn("could not read request body", "err", err)
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		c.reqBody = body
	}

	ctx := context.WithValue(r.Context(), captureKey{}, c)
	p.rp.ServeHTTP(w, r.WithContext(ctx))
}

func (p *Proxy) modifyResponse(res *http.Response) error {
	c, ok := res.Request.Context().Value(captureKey{}).(*capture)
	if !ok {
		return nil
	}

	slog.Info("handling", "method", c.method, "path", c.path, "status", res.Status)
	if 500 <= res.StatusCode && res.StatusCode < 600 {
		return nil
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if err := res.Body.Close(); err != nil {
		slog.Warn("could not close response body", "err", err)
	}
	res.Body = io.NopCloser(bytes.NewReader(raw))

	p.observeRequest(c, res.StatusCode)
	p.observeResponse(c, res, raw)
	return nil
}

func (p *Proxy) observeRequest(c *capture, status int) {
	if len(c.reqBody) == 0 || status == http.StatusBadRequest {
		// the upstream rejected the request shape, don't learn from it
		return
	}
	if !p.contentTypeOK(c.reqType) {
		return
	}

	body, err := decodeBody(c.reqEnc, c.reqBody)
	if err != nil {
		slog.Warn("could not decode request body", "err", err)
		return
	}

	key := SourceKey(c.method, c.path, DirectionRequest)
	s, err := p.reg.ObserveBytes(key, body)
	if err != nil {
		slog.Debug("could not parse request body", "key", key, "err", err)
		return
	}
	p.out.write(c.host, TemplatePath(c.path), DirectionRequest, s)
}

func (p *Proxy) observeResponse(c *capture, res *http.Response, raw []byte) {
	if len(raw) == 0 {
		return
	}
	if !p.contentTypeOK(res.Header.Get("Content-Type")) {
		return
	}

	body, err := decodeBody(res.Header.Get("Content-Encoding"), raw)
	if err != nil {
		slog.Warn("could not decode response body", "err", err)
		return
	}

	key := SourceKey(c.method, c.path, DirectionResponse)
	s, err := p.reg.ObserveBytes(key, body)
	if err != nil {
		slog.Debug("could not parse response body", "key", key, "err", err)
		return
	}
	p.out.write(c.host, TemplatePath(c.path), DirectionResponse, s)
}

func (p *Proxy) contentTypeOK(ct string) bool {
	if !p.checks {
		return true
	}
	mt, _, err := mime.ParseMediaType(ct)
	return err == nil && mt == "application/json"
}
