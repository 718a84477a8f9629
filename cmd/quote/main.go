// Command quote runs the full pricing pipeline offline against the synthetic
// feature source: forecast, loss distribution, premium, and explanation for
// one set of asset assumptions, printed as JSON.
//
// Usage:
//
//	go run ./cmd/quote -altitude LEO -shielding 3 -asset-value 100000000
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cosmicweather/risk-service/internal/adapter/omniweb"
	"github.com/cosmicweather/risk-service/internal/domain"
	"github.com/cosmicweather/risk-service/internal/observability"
	"github.com/cosmicweather/risk-service/internal/risk"
)

func main() {
	altitude := flag.String("altitude", "LEO", "orbital regime of the insured asset")
	shielding := flag.Float64("shielding", 3, "shielding level of the insured asset")
	assetValue := flag.Float64("asset-value", domain.DefaultAssetValue, "declared asset value in currency units")
	riskLoad := flag.Float64("risk-load", domain.DefaultRiskLoad, "premium risk load")
	confidence := flag.Float64("confidence", domain.DefaultConfidenceLevel, "pricing confidence level")
	issuedAt := flag.String("issued-at", "", "fix the forecast issue time (RFC3339) for reproducible output")
	flag.Parse()

	if *issuedAt != "" {
		at, err := time.Parse(time.RFC3339, *issuedAt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -issued-at: %v\n", err)
			os.Exit(1)
		}
		domain.SetClock(clockwork.NewFakeClockAt(at))
		defer domain.SetClock(nil)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := risk.NewService(omniweb.NewStaticSource(), nil, logger,
		observability.NewMetrics(), *riskLoad, *confidence)

	quote, err := svc.RunQuote(context.Background(), domain.Assumptions{
		Altitude:       *altitude,
		ShieldingLevel: *shielding,
		AssetValue:     *assetValue,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "quote failed: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(quote, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode quote: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
