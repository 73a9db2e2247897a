package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func echo(ctx context.Context, req *Request) (*Response, error) {
	body, _ := json.Marshal(map[string]string{
		"method": req.Method,
		"body":   string(req.Body),
		"agent":  req.Header("user-agent"),
	})
	resp := &Response{StatusCode: http.StatusOK, Body: body}
	resp.SetHeader("Content-Type", "application/json")
	return resp, nil
}

func TestRequestHeader(t *testing.T) {
	req := &Request{Headers: map[string]string{
		"content-type":    "application/json",
		"X-Forwarded-For": "10.0.0.1",
	}}

	assert.Equal(t, "application/json", req.Header("Content-Type"))
	assert.Equal(t, "10.0.0.1", req.Header("x-forwarded-for"))
	assert.Equal(t, "", req.Header("Missing"))

	var nilReq *Request
	assert.Equal(t, "", nilReq.Header("Anything"))
}

func TestFromAPIGateway(t *testing.T) {
	t.Run("base64 body", func(t *testing.T) {
		req, err := FromAPIGateway(events.APIGatewayProxyRequest{
			HTTPMethod:      http.MethodPost,
			Body:            base64.StdEncoding.EncodeToString([]byte(`{"a":1}`)),
			IsBase64Encoded: true,
		})
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(req.Body))
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := FromAPIGateway(events.APIGatewayProxyRequest{Body: "!!!", IsBase64Encoded: true})
		assert.Error(t, err)
	})

	t.Run("single value headers win", func(t *testing.T) {
		req, err := FromAPIGateway(events.APIGatewayProxyRequest{
			Headers:           map[string]string{"X-Forwarded-For": "1.1.1.1"},
			MultiValueHeaders: map[string][]string{"X-Forwarded-For": {"2.2.2.2"}, "Accept": {"*/*", "text/html"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "1.1.1.1", req.Header("X-Forwarded-For"))
		assert.Equal(t, "*/*", req.Header("Accept"))
	})
}

func TestAdapt(t *testing.T) {
	ctx := context.Background()

	t.Run("passes through", func(t *testing.T) {
		out, err := Adapt(echo, quietLogger())(ctx, events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodPost,
			Body:       "hello",
			Headers:    map[string]string{"User-Agent": "tester"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, out.StatusCode)
		assert.JSONEq(t, `{"method":"POST","body":"hello","agent":"tester"}`, out.Body)
	})

	t.Run("handler error", func(t *testing.T) {
		failing := func(ctx context.Context, req *Request) (*Response, error) {
			return nil, errors.New("store down")
		}
		out, err := Adapt(failing, quietLogger())(ctx, events.APIGatewayProxyRequest{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, out.StatusCode)
		assert.JSONEq(t, `{"error":"store down"}`, out.Body)
	})

	t.Run("panic", func(t *testing.T) {
		panicking := func(ctx context.Context, req *Request) (*Response, error) {
			panic("nil map")
		}
		out, err := Adapt(panicking, quietLogger())(ctx, events.APIGatewayProxyRequest{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, out.StatusCode)
		assert.JSONEq(t, `{"error":"nil map"}`, out.Body)
	})
}

func TestGinHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Any("/echo", GinHandler(echo))
	router.Any("/empty", GinHandler(func(ctx context.Context, req *Request) (*Response, error) {
		return &Response{StatusCode: http.StatusNoContent, Headers: map[string]string{"Allow": "POST"}}, nil
	}))
	router.Any("/limited", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 4)
		c.Next()
	}, GinHandler(echo))

	t.Run("echo", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/echo", strings.NewReader("payload"))
		req.Header.Set("User-Agent", "tester")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"method":"PUT","body":"payload","agent":"tester"}`, w.Body.String())
	})

	t.Run("empty body", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/empty", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "POST", w.Header().Get("Allow"))
		assert.Empty(t, w.Body.String())
	})

	t.Run("body over limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", strings.NewReader("too long")))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
