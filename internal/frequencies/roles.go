package frequencies

import "strings"

// RoleMap holds the named stations a checklist talks to. Unset single roles are the
// empty Frequency, never nil.
type RoleMap struct {
	Ground   Frequency   `json:"ground"`
	Info     Frequency   `json:"info"`
	FIS      []Frequency `json:"fis"`
	ArrInfo  Frequency   `json:"arr_info"`
	ArrApron Frequency   `json:"arr_apron"`
}

// ExtractRoles picks the ground, info, FIS, arrival info and arrival apron stations
func ExtractRoles(c *Classifier, departure []Frequency, enroute *PhasedMap, arrival []Frequency) RoleMap {
	roles := RoleMap{FIS: []Frequency{}}

	// Each departure entry is considered for one role only, in clause order.
	// RADIO is a fallback for info and never beats an INFORMATION entry.
	var radioFallback Frequency
	for _, f := range departure {
		upper := strings.ToUpper(f.Name)
		switch {
		case strings.Contains(upper, "VORFELD") || strings.Contains(upper, "GROUND"):
			if roles.Ground.IsZero() {
				roles.Ground = f
			}
		case strings.Contains(upper, "INFORMATION") && !strings.Contains(upper, c.Marker()):
			if roles.Info.IsZero() {
				roles.Info = f
			}
		case strings.Contains(upper, "RADIO"):
			if radioFallback.IsZero() {
				radioFallback = f
			}
		}
	}
	if roles.Info.IsZero() {
		roles.Info = radioFallback
	}

	if enroute != nil {
		for _, pf := range enroute.Entries() {
			if c.IsFIS(pf.Name) {
				roles.FIS = append(roles.FIS, pf.Frequency())
			}
		}
	}

	for _, f := range arrival {
		upper := strings.ToUpper(f.Name)
		if strings.Contains(upper, "RADIO") || strings.Contains(upper, "INFO") {
			roles.ArrInfo = f
			break
		}
	}

	for _, f := range arrival {
		upper := strings.ToUpper(f.Name)
		if strings.Contains(upper, "VORFELD") || strings.Contains(upper, "GROUND") || strings.Contains(upper, "APRON") {
			roles.ArrApron = f
			break
		}
	}

	return roles
}

// FirstFIS returns the first en-route FIS station or the empty placeholder
func (r RoleMap) FirstFIS() Frequency {
	if len(r.FIS) == 0 {
		return Frequency{}
	}
	return r.FIS[0]
}
