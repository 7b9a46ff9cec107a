package model

// CycleData is the full payload of one capture cycle, exported as JSON for
// the dashboard frontend and handed between the capture and snapshot layers.
type CycleData struct {
	Cycle      CycleSummary     `json:"cycle"`
	Routes     []*Route         `json:"routes"`
	Captures   []*CaptureRecord `json:"captures"`
	Conditions []RoadCondition  `json:"conditions"`
	Events     []Event          `json:"events"`
	Weather    []WeatherStation `json:"weather"`
	Passes     []MountainPass   `json:"passes"`
	Plows      []SnowPlow       `json:"plows"`
}

// CycleIndex lists all known capture cycles, newest first.
type CycleIndex struct {
	Cycles []CycleSummary `json:"cycles"`
	Count  int            `json:"count"`
}
