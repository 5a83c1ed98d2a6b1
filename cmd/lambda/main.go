// Command lambda serves the skincare API from AWS Lambda behind an API
// Gateway HTTP API.
package main

import (
	"context"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"go.uber.org/zap"

	"skincare-backend/infrastructure/config"
	"skincare-backend/infrastructure/di"
)

var (
	chiLambda *chiadapter.ChiLambdaV2
	container *di.Container

	startedAt time.Time
	warm      atomic.Bool
)

// init loads the catalog once per execution environment. The cache sweeper
// lives as long as the environment, so the cleanup func is dropped.
func init() {
	startedAt = time.Now()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, _, err = di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	chiLambda = chiadapter.NewV2(container.Router.Setup())

	container.Logger.Info("Execution environment ready",
		zap.Duration("init", time.Since(startedAt)),
		zap.Int("ingredients", container.Graph.IngredientCount()),
	)
}

// Handler proxies one API Gateway request through the router
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	logger := container.Logger.With(
		zap.String("method", req.RequestContext.HTTP.Method),
		zap.String("path", req.RequestContext.HTTP.Path),
		zap.String("request_id", req.RequestContext.RequestID),
	)

	resp, err := chiLambda.ProxyWithContextV2(ctx, req)
	if err != nil {
		logger.Error("Lambda proxy failed", zap.Error(err))
	}

	if resp.Headers == nil {
		resp.Headers = make(map[string]string, 3)
	}
	cold := !warm.Swap(true)
	resp.Headers["X-Cold-Start"] = strconv.FormatBool(cold)
	if cold {
		resp.Headers["X-Cold-Start-Duration"] = time.Since(startedAt).String()
	}
	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Request-ID"] = req.RequestContext.RequestID
	}

	logger.Debug("Lambda response", zap.Int("status", resp.StatusCode), zap.Bool("cold_start", cold))
	return resp, err
}

func main() {
	lambda.Start(Handler)
}
