package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/MKhiriev/go-login-widget/internal/client"
	"github.com/MKhiriev/go-login-widget/internal/config"
	"github.com/MKhiriev/go-login-widget/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewWidgetLogger("login-widget")
	cfg, err := config.GetWidgetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	// The embedding page passes the entry context ("logout", "reset",
	// "forgot") as the first positional argument.
	directive := flag.Arg(0)

	app, err := client.NewApp(context.Background(), cfg, directive, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init widget app error")
	}

	redirect, err := app.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("widget run error")
	}
	if redirect != "" {
		fmt.Println(redirect)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
