// Command authstub is a development stand-in for the auth service. It keeps
// accounts in memory and speaks the exact wire surface the widget's adapter
// expects, so the widget can be exercised end to end without a real backend.
package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-login-widget/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	address := flag.String("a", "localhost:8080", "Listen address host:port")
	flag.Parse()

	log := logger.NewLogger("auth-stub")

	handler := newHandler(log)

	log.Info().Str("address", *address).Msg("auth stub listening")
	if err := http.ListenAndServe(*address, handler.Init()); err != nil {
		log.Fatal().Err(err).Msg("auth stub server error")
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
