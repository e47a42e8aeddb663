package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"news-relay/internal/pipeline"
)

// Response mirrors what the scheduler sees after a run.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Collected  int    `json:"collected"`
}

// Handler runs one full collection and writes the feed document to
// OUTPUT_PATH (defaulting to /tmp inside the Lambda sandbox).
func Handler(ctx context.Context) (Response, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := pipeline.LoadConfig(configPath)
	if err != nil {
		return Response{StatusCode: 500, Message: err.Error()}, err
	}

	if out := os.Getenv("OUTPUT_PATH"); out != "" {
		cfg.Output = out
	} else {
		cfg.Output = "/tmp/feed.xml"
	}

	fetcher := pipeline.NewFetcher(cfg.Fetch)
	result := pipeline.CollectAll(cfg, fetcher)

	xml, err := pipeline.BuildFeed(result.Items, cfg, time.Now())
	if err != nil {
		return Response{StatusCode: 500, Message: err.Error()}, err
	}
	if err := os.WriteFile(cfg.Output, []byte(xml), 0o644); err != nil {
		return Response{StatusCode: 500, Message: err.Error()}, err
	}

	return Response{
		StatusCode: 200,
		Message:    fmt.Sprintf("wrote %s (%s)", cfg.Output, result.Summary()),
		Collected:  len(result.Items),
	}, nil
}

func main() {
	lambda.Start(Handler)
}
