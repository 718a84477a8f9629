// Package vulnerability scores uploaded asset telemetry. The ingestion is a
// demo stub: it counts anomaly-flagged records and folds the anomaly rate
// into a bounded vulnerability score for the dashboard.
package vulnerability

import (
	"fmt"
	"regexp"
	"strings"
)

// Scoring constants. A clean log still carries the base score so the UI
// never shows a zero-risk asset with data on file.
const (
	baseVulnerability = 0.1
	anomalyWeight     = 0.9
)

// anomalyPattern matches the log markers the uploader flags client-side.
var anomalyPattern = regexp.MustCompile(`(?i)anomaly|error|fault`)

// Record is one telemetry entry. Uploads arrive either as structured JSON
// or as log lines pre-tagged by the client, so fields are open-ended.
type Record map[string]any

// Report summarizes one telemetry ingestion.
type Report struct {
	OK                 bool    `json:"ok"`
	AssetID            string  `json:"assetId"`
	RecordsAnalyzed    int     `json:"recordsAnalyzed"`
	AnomalyRate        float64 `json:"anomalyRate"`
	VulnerabilityScore float64 `json:"vulnerabilityScore"`
	Summary            string  `json:"summary"`
}

// IngestTelemetry analyzes the uploaded records for one asset. An empty
// upload is still OK and scores zero.
func IngestTelemetry(assetID string, records []Record) Report {
	report := Report{OK: true, AssetID: assetID, RecordsAnalyzed: len(records)}
	if len(records) == 0 {
		report.Summary = fmt.Sprintf("No telemetry records for asset %s.", assetID)
		return report
	}

	anomalies := 0
	for _, rec := range records {
		if isAnomalous(rec) {
			anomalies++
		}
	}

	report.AnomalyRate = float64(anomalies) / float64(len(records))
	report.VulnerabilityScore = baseVulnerability + anomalyWeight*report.AnomalyRate
	if report.VulnerabilityScore > 1 {
		report.VulnerabilityScore = 1
	}
	report.Summary = fmt.Sprintf(
		"Analyzed %d records for asset %s: %d anomalous.",
		len(records), assetID, anomalies,
	)
	return report
}

// isAnomalous flags a record either by its explicit anomaly marker or by
// scanning free-text fields for anomaly keywords.
func isAnomalous(rec Record) bool {
	if flagged, ok := rec["anomaly"].(bool); ok {
		return flagged
	}
	for _, field := range []string{"line", "message", "status"} {
		if text, ok := rec[field].(string); ok && anomalyPattern.MatchString(strings.TrimSpace(text)) {
			return true
		}
	}
	return false
}
