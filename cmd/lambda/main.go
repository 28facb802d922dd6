package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/graphacademy/journey/internal/app"
	"github.com/graphacademy/journey/internal/config"
	"github.com/graphacademy/journey/internal/course/cache"
	"github.com/graphacademy/journey/internal/logging"
	"github.com/graphacademy/journey/internal/mission"
	"github.com/graphacademy/journey/internal/transport/lambdatransport"
)

func main() {
	cfg := config.Load()
	logging.Init(logging.ParseLevel(cfg.LogLevel), "json")

	svc := app.NewService(mission.DefaultCatalog(),
		app.WithCourseCache(cache.NewInMemory(cfg.CourseCacheMax)),
	)
	h := lambdatransport.NewHandler(svc)

	lambda.Start(h.Classify)
}
