package models

import (
	"strings"
	"time"
)

// DepartureInfo represents a single departure at a station
type DepartureInfo struct {
	Label         string `json:"label"`
	TransportType string `json:"transportType"`
	Destination   string `json:"destination"`
	Platform      *int   `json:"platform,omitempty"`
	// RealtimeDepartureTime is milliseconds since the Unix epoch
	RealtimeDepartureTime int64 `json:"realtimeDepartureTime"`
	PlannedDepartureTime  int64 `json:"plannedDepartureTime,omitempty"`
	DelayMinutes          int   `json:"delayInMinutes"`
	Cancelled             bool  `json:"cancelled"`
	// Network is the operating network code, e.g. "swm"
	Network string `json:"network,omitempty"`
}

// DepartureResponse represents the raw JSON for a single departure entry
type DepartureResponse struct {
	PlannedDepartureTime  int64  `json:"plannedDepartureTime"`
	Realtime              bool   `json:"realtime"`
	DelayInMinutes        int    `json:"delayInMinutes"`
	RealtimeDepartureTime int64  `json:"realtimeDepartureTime"`
	TransportType         string `json:"transportType"`
	Label                 string `json:"label"`
	DivaID                string `json:"divaId"`
	Network               string `json:"network"`
	TrainType             string `json:"trainType"`
	Destination           string `json:"destination"`
	Cancelled             bool   `json:"cancelled"`
	Sev                   bool   `json:"sev"`
	Platform              *int   `json:"platform"`
	PlatformChanged       bool   `json:"platformChanged"`
	StopPointGlobalID     string `json:"stopPointGlobalId"`
}

// ToDeparture converts the raw response to a DepartureInfo
func (r *DepartureResponse) ToDeparture() *DepartureInfo {
	dep := &DepartureInfo{
		Label:                 strings.TrimSpace(r.Label),
		TransportType:         r.TransportType,
		Destination:           strings.TrimSpace(r.Destination),
		PlannedDepartureTime:  r.PlannedDepartureTime,
		RealtimeDepartureTime: r.RealtimeDepartureTime,
		DelayMinutes:          r.DelayInMinutes,
		Cancelled:             r.Cancelled,
		Network:               strings.ToLower(strings.TrimSpace(r.Network)),
	}

	if r.Platform != nil {
		p := *r.Platform
		dep.Platform = &p
	}

	// Without live data MVG leaves the realtime field at zero
	if dep.RealtimeDepartureTime == 0 {
		dep.RealtimeDepartureTime = r.PlannedDepartureTime
	}

	return dep
}

// DepartureTime returns the realtime departure as a time.Time in loc
func (d *DepartureInfo) DepartureTime(loc *time.Location) time.Time {
	return time.UnixMilli(d.RealtimeDepartureTime).In(loc)
}

// Product returns the transport type as a Product tag
func (d *DepartureInfo) Product() Product {
	return Product(d.TransportType)
}
