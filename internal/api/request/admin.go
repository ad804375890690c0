package request

// SimulateRequest drives the price simulator. All fields are optional;
// handlers apply defaults per scenario.
type SimulateRequest struct {
	Volatility   *float64 `json:"volatility,omitempty"`
	CrashPercent *float64 `json:"crash_percent,omitempty"`
	RallyPercent *float64 `json:"rally_percent,omitempty"`
	MaxStocks    *int     `json:"max_stocks,omitempty"`
}
