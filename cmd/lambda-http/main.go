package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"cvisionary/internal/bootstrap"
	"cvisionary/internal/shared/config"
	"cvisionary/internal/shared/telemetry"
)

// adapter is built once per execution environment and reused across
// invocations so the database pool survives warm starts.
var adapter = sync.OnceValues(func() (*ginadapter.GinLambdaV2, error) {
	app, err := bootstrap.Build(config.Load())
	if err != nil {
		return nil, err
	}
	return ginadapter.NewV2(app.Router), nil
})

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	proxy, err := adapter()
	if err != nil {
		telemetry.Error("lambda.bootstrap", map[string]any{"error": err.Error()})
		return events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"success":false,"message":"Internal Server Error","error":{"code":"bootstrap_failed","message":"Internal Server Error"}}`,
			Headers:    map[string]string{"Content-Type": "application/json"},
		}, nil
	}
	return proxy.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
