package lambda

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FromGin converts a gin request into a generic request. Only the first
// value of each header is kept.
func FromGin(c *gin.Context) (*Request, error) {
	var body []byte
	if c.Request.Body != nil {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
		body = data
	}

	headers := make(map[string]string, len(c.Request.Header))
	for k, values := range c.Request.Header {
		if len(values) > 0 {
			headers[k] = values[0]
		}
	}

	query := make(map[string]string)
	for k, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			query[k] = values[0]
		}
	}

	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}

	return &Request{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     headers,
		QueryParams: query,
		Body:        body,
		PathParams:  params,
	}, nil
}

// GinHandler lets a HandlerFunc serve gin routes, so the HTTP server and
// the Lambda binaries share one implementation per endpoint.
func GinHandler(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := FromGin(c)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request too large"})
				return
			}
			writeGin(c, internalError(err.Error()))
			return
		}

		resp, err := h(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			resp = internalError(err.Error())
		}
		writeGin(c, resp)
	}
}

func writeGin(c *gin.Context, resp *Response) {
	for k, v := range resp.Headers {
		c.Header(k, v)
	}
	if len(resp.Body) == 0 {
		c.Status(resp.StatusCode)
		c.Writer.WriteHeaderNow()
		return
	}
	c.Writer.WriteHeader(resp.StatusCode)
	_, _ = c.Writer.Write(resp.Body)
}
