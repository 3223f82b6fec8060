package proxy

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castorhq/castor/jsonschema"
	"github.com/castorhq/castor/registry"
)

func newTestProxy(t *testing.T, upstream http.Handler, cfg Config) (*registry.Registry, *httptest.Server) {
	t.Helper()

	us := httptest.NewServer(upstream)
	t.Cleanup(us.Close)

	u, err := url.Parse(us.URL)
	require.Nil(t, err)
	cfg.Upstream = u

	reg := registry.New()
	ps := httptest.NewServer(New(reg, cfg))
	t.Cleanup(ps.Close)

	return reg, ps
}

func jsonHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
}

func TestProxyObservesResponse(t *testing.T) {
	reg, ps := newTestProxy(t, jsonHandler(200, `{"id": "3fa85f64-5717-4562-b3fc-2c963f66afa6"}`), Config{Checks: true})

	res, err := http.Get(ps.URL + "/widgets/17")
	require.Nil(t, err)
	defer res.Body.Close()

	// the client still sees the original body
	bs, err := io.ReadAll(res.Body)
	require.Nil(t, err)
	assert.JSONEq(t, `{"id": "3fa85f64-5717-4562-b3fc-2c963f66afa6"}`, string(bs))

	cur, ok := reg.Current("GET /widgets/{arg1} resp")
	require.True(t, ok)
	assert.Equal(t, jsonschema.FormatUUID, cur.AsObject().Field("id").Value.AsString().Format)
}

func TestProxyObservesRequestBody(t *testing.T) {
	reg, ps := newTestProxy(t, jsonHandler(201, `{"ok": true}`), Config{Checks: true})

	res, err := http.Post(ps.URL+"/widgets", "application/json", strings.NewReader(`{"name": "gizmo"}`))
	require.Nil(t, err)
	res.Body.Close()

	cur, ok := reg.Current("POST /widgets req")
	require.True(t, ok)
	assert.Equal(t, jsonschema.KindString, cur.AsObject().Field("name").Value.Kind())

	_, ok = reg.Current("POST /widgets resp")
	assert.True(t, ok)
}

func TestProxySkipsNonJSONContentType(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, `{"a": 1}`)
	})
	reg, ps := newTestProxy(t, h, Config{Checks: true})

	res, err := http.Get(ps.URL + "/thing")
	require.Nil(t, err)
	res.Body.Close()

	assert.Equal(t, 0, len(reg.Keys()))
}

func TestProxyChecksDisabledStillTriesBody(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, `{"a": 1}`)
	})
	reg, ps := newTestProxy(t, h, Config{Checks: false})

	res, err := http.Get(ps.URL + "/thing")
	require.Nil(t, err)
	res.Body.Close()

	_, ok := reg.Current("GET /thing resp")
	assert.True(t, ok)
}

func TestProxyChecksDisabledNonJSONBodyDropped(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "just some text")
	})
	reg, ps := newTestProxy(t, h, Config{Checks: false})

	res, err := http.Get(ps.URL + "/thing")
	require.Nil(t, err)
	res.Body.Close()

	assert.Equal(t, 0, len(reg.Keys()))
}

func TestProxySkipsServerErrors(t *testing.T) {
	reg, ps := newTestProxy(t, jsonHandler(500, `{"error": "boom"}`), Config{Checks: true})

	res, err := http.Get(ps.URL + "/thing")
	require.Nil(t, err)
	res.Body.Close()

	assert.Equal(t, 0, len(reg.Keys()))
}

func TestProxySkipsRequestBodyOnBadRequest(t *testing.T) {
	reg, ps := newTestProxy(t, jsonHandler(400, `{"error": "bad"}`), Config{Checks: true})

	res, err := http.Post(ps.URL+"/widgets", "application/json", strings.NewReader(`{"nope": 1}`))
	require.Nil(t, err)
	res.Body.Close()

	_, ok := reg.Current("POST /widgets req")
	assert.False(t, ok)

	// the error response shape is still worth learning
	_, ok = reg.Current("POST /widgets resp")
	assert.True(t, ok)
}

func TestProxyDecodesGzipResponse(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		io.WriteString(zw, `{"a": 1}`)
		zw.Close()

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(buf.Bytes())
	})
	reg, ps := newTestProxy(t, h, Config{Checks: true})

	req, err := http.NewRequest("GET", ps.URL+"/thing", nil)
	require.Nil(t, err)
	// keep the transport from transparently gunzipping on the client side
	req.Header.Set("Accept-Encoding", "gzip")

	res, err := http.DefaultClient.Do(req)
	require.Nil(t, err)
	res.Body.Close()

	cur, ok := reg.Current("GET /thing resp")
	require.True(t, ok)
	assert.True(t, jsonschema.Equal(jsonschema.Integer, cur.AsObject().Field("a").Value))
}

func TestProxyDecodesGzipRequestBody(t *testing.T) {
	reg, ps := newTestProxy(t, jsonHandler(201, `{"ok": true}`), Config{Checks: true})

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	io.WriteString(zw, `{"name": "gizmo"}`)
	zw.Close()

	req, err := http.NewRequest("POST", ps.URL+"/widgets", &buf)
	require.Nil(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	res, err := http.DefaultClient.Do(req)
	require.Nil(t, err)
	res.Body.Close()

	cur, ok := reg.Current("POST /widgets req")
	require.True(t, ok)
	assert.Equal(t, jsonschema.KindString, cur.AsObject().Field("name").Value.Kind())
}

func TestProxyWritesSchemaToOutputDir(t *testing.T) {
	dir := t.TempDir()
	_, ps := newTestProxy(t, jsonHandler(200, `{"a": 1}`), Config{Checks: true, OutputDir: dir})

	res, err := http.Get(ps.URL + "/widgets/17")
	require.Nil(t, err)
	res.Body.Close()

	host := strings.TrimPrefix(ps.URL, "http://")
	name := fileName(host, "/widgets/{arg1}", DirectionResponse)
	bs, err := os.ReadFile(filepath.Join(dir, name))
	require.Nil(t, err)
	assert.Contains(t, string(bs), `"type": "object"`)
}
