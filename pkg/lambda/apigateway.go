package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

// FromAPIGateway converts an API Gateway proxy event into a generic request.
func FromAPIGateway(event events.APIGatewayProxyRequest) (*Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded && event.Body != "" {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 body: %w", err)
		}
		body = decoded
	}

	headers := make(map[string]string, len(event.Headers)+len(event.MultiValueHeaders))
	for k, values := range event.MultiValueHeaders {
		if len(values) > 0 {
			headers[k] = values[0]
		}
	}
	for k, v := range event.Headers {
		headers[k] = v
	}

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		PathParams:  event.PathParameters,
	}, nil
}

// ToAPIGateway converts a generic response into an API Gateway proxy response.
func ToAPIGateway(resp *Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}
}

// Adapt turns a HandlerFunc into an API Gateway proxy handler. Errors and
// panics escaping the handler are converted into a 500 JSON response so the
// platform never sees an unhandled failure.
func Adapt(h HandlerFunc, logger *logrus.Logger) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return func(ctx context.Context, event events.APIGatewayProxyRequest) (out events.APIGatewayProxyResponse, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(logrus.Fields{
					"method": event.HTTPMethod,
					"path":   event.Path,
					"panic":  fmt.Sprintf("%v", r),
				}).Error("Handler panicked")
				out = ToAPIGateway(internalError(fmt.Sprintf("%v", r)))
				err = nil
			}
		}()

		req, convErr := FromAPIGateway(event)
		if convErr != nil {
			return ToAPIGateway(internalError(convErr.Error())), nil
		}

		resp, handlerErr := h(ctx, req)
		if handlerErr != nil {
			logger.WithError(handlerErr).WithFields(logrus.Fields{
				"method": event.HTTPMethod,
				"path":   event.Path,
			}).Error("Handler returned error")
			return ToAPIGateway(internalError(handlerErr.Error())), nil
		}

		return ToAPIGateway(resp), nil
	}
}

// Start runs h as the Lambda function entry point.
func Start(h HandlerFunc, logger *logrus.Logger) {
	awslambda.Start(Adapt(h, logger))
}

func internalError(message string) *Response {
	body, _ := json.Marshal(map[string]string{"error": message})
	return &Response{
		StatusCode: http.StatusInternalServerError,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}
