package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cosmicweather/risk-service/internal/domain"
	"github.com/cosmicweather/risk-service/internal/vulnerability"
)

type lossModelRequest struct {
	Forecast *domain.Forecast `json:"forecast"`
	Asset    struct {
		Value float64 `json:"value"`
	} `json:"asset"`
}

type premiumRequest struct {
	LossDistribution domain.LossDistribution `json:"lossDistribution"`
	RiskLoad         *float64                `json:"riskLoad"`
	ConfidenceLevel  *float64                `json:"confidenceLevel"`
}

type subscribeRequest struct {
	Channels   []string           `json:"channels"`
	Thresholds map[string]float64 `json:"thresholds"`
	Contact    map[string]string  `json:"contact"`
}

type telemetryRequest struct {
	AssetID   string                 `json:"assetId"`
	Telemetry []vulnerability.Record `json:"telemetry"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

// handleForecast generates a forecast from the live feature source. Absent
// numeric parameters default to 0 and flow through the model's default
// policies; present but unparseable ones are rejected.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	shielding, ok := floatParam(w, q.Get("shieldingLevel"), "shieldingLevel")
	if !ok {
		return
	}
	assetValue, ok := floatParam(w, q.Get("assetValue"), "assetValue")
	if !ok {
		return
	}

	forecast, err := s.risk.Forecast(r.Context(), domain.Assumptions{
		Altitude:       q.Get("altitude"),
		ShieldingLevel: shielding,
		AssetValue:     assetValue,
	})
	if err != nil {
		s.logger.Error("forecast failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate forecast")
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

func (s *Server) handleLossModel(w http.ResponseWriter, r *http.Request) {
	var req lossModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed loss model request")
		return
	}
	writeJSON(w, http.StatusOK, s.risk.Loss(req.Forecast, req.Asset.Value))
}

func (s *Server) handlePremium(w http.ResponseWriter, r *http.Request) {
	var req premiumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed premium request")
		return
	}
	writeJSON(w, http.StatusOK, s.risk.Premium(req.LossDistribution, req.RiskLoad, req.ConfidenceLevel))
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed subscription request")
		return
	}

	sub := s.alerts.Subscribe(req.Channels, req.Thresholds, req.Contact)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": sub.ID})
}

func (s *Server) handleAlerts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.alerts.Recent())
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	var req telemetryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed telemetry upload")
		return
	}
	writeJSON(w, http.StatusOK, vulnerability.IngestTelemetry(req.AssetID, req.Telemetry))
}

// handleExplain attributes a client-supplied forecast, passed JSON-encoded in
// the forecast query parameter. An absent or unparseable forecast yields the
// baseline explanation rather than an error, matching the dashboard contract.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var forecast *domain.Forecast
	if raw := r.URL.Query().Get("forecast"); raw != "" {
		var parsed domain.Forecast
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			forecast = &parsed
		}
	}
	writeJSON(w, http.StatusOK, s.risk.Explain(forecast))
}

// floatParam parses an optional numeric query parameter. Empty means 0;
// anything unparseable writes a 400 and reports failure.
func floatParam(w http.ResponseWriter, raw, name string) (float64, bool) {
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return v, true
}
