package checklist

import (
	"fmt"
	"strings"

	"github.com/yegors/atcopilot/internal/frequencies"
)

// DefaultRules is the built-in German VFR call table
var DefaultRules = MustTable(
	Rule{
		Key:    "rollinformation",
		Params: []Field{FieldGround, FieldCallsign, FieldAircraftType, FieldPax, FieldArrival, FieldPosition},
		Phase:  frequencies.PhasePreStartTaxi,
		Format: func(a Args) (string, error) {
			v, err := collect(a, FieldCallsign, FieldAircraftType, FieldArrival, FieldPosition)
			if err != nil {
				return "", err
			}
			pax, err := a.Int(FieldPax)
			if err != nil {
				return "", err
			}
			station, err := stationName(a, FieldGround, "Vorfeld")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s, %s, %s, %s, VFR nach %s, %s, erbitte Rollinformationen",
				station, v[0], v[1], persons(pax), v[2], v[3]), nil
		},
	},
	Rule{
		Key:    "abflugbereit",
		Params: []Field{FieldInfo, FieldCallsign},
		Phase:  frequencies.PhaseDepartureTakeoff,
		Format: func(a Args) (string, error) {
			cs, err := a.String(FieldCallsign)
			if err != nil {
				return "", err
			}
			station, err := stationName(a, FieldInfo, "Info")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s, %s, abflugbereit", station, cs), nil
		},
	},
	Rule{
		Key:    "platzrunde_verlassen",
		Params: []Field{FieldCallsign, FieldArrival},
		Phase:  frequencies.PhaseDepartureTakeoff,
		Format: func(a Args) (string, error) {
			v, err := collect(a, FieldCallsign, FieldArrival)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s, verlasse die Platzrunde in Richtung %s, verlasse die Frequenz", v[0], v[1]), nil
		},
	},
	Rule{
		Key:    "fis_erstanruf",
		Params: []Field{FieldFIS, FieldCallsign},
		Phase:  frequencies.PhaseEnrouteCruise,
		Format: func(a Args) (string, error) {
			cs, err := a.String(FieldCallsign)
			if err != nil {
				return "", err
			}
			station, err := stationName(a, FieldFIS, "Langen Information")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s, %s, guten Tag", station, cs), nil
		},
	},
	Rule{
		Key:    "fis_verkehrsinformation",
		Params: []Field{FieldCallsign, FieldAircraftType, FieldPax, FieldDeparture, FieldArrival},
		Phase:  frequencies.PhaseEnrouteCruise,
		Format: func(a Args) (string, error) {
			v, err := collect(a, FieldCallsign, FieldAircraftType, FieldDeparture, FieldArrival)
			if err != nil {
				return "", err
			}
			pax, err := a.Int(FieldPax)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s, %s, %s, VFR von %s nach %s, erbitte Verkehrsinformationen",
				v[0], v[1], persons(pax), v[2], v[3]), nil
		},
	},
	Rule{
		Key:    "anflug",
		Params: []Field{FieldArrInfo, FieldCallsign, FieldAircraftType, FieldArrival},
		Phase:  frequencies.PhaseArrivalTrafficCircuit,
		Format: func(a Args) (string, error) {
			v, err := collect(a, FieldCallsign, FieldAircraftType, FieldArrival)
			if err != nil {
				return "", err
			}
			station, err := stationName(a, FieldArrInfo, "Info")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s, %s, %s, im Anflug auf %s, erbitte Landeinformationen",
				station, v[0], v[1], v[2]), nil
		},
	},
	Rule{
		Key:    "gegenanflug",
		Params: []Field{FieldCallsign},
		Phase:  frequencies.PhaseArrivalTrafficCircuit,
		Format: func(a Args) (string, error) {
			cs, err := a.String(FieldCallsign)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s, im Gegenanflug", cs), nil
		},
	},
	Rule{
		Key:    "nach_landung",
		Params: []Field{FieldArrApron, FieldArrInfo, FieldCallsign},
		Phase:  frequencies.PhaseAfterLandingApron,
		Format: func(a Args) (string, error) {
			cs, err := a.String(FieldCallsign)
			if err != nil {
				return "", err
			}
			apron, err := a.Station(FieldArrApron)
			if err != nil {
				return "", err
			}
			station := apron.Name
			if station == "" {
				if station, err = stationName(a, FieldArrInfo, "Vorfeld"); err != nil {
					return "", err
				}
			}
			return fmt.Sprintf("%s, %s, Piste verlassen, erbitte Rollen zum Abstellplatz", station, cs), nil
		},
	},
)

// collect fetches several text fields at once, failing on the first missing one
func collect(a Args, fields ...Field) ([]string, error) {
	out := make([]string, len(fields))
	for i, f := range fields {
		v, err := a.String(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// stationName returns the station's name, or fallback when the role is unset
func stationName(a Args, f Field, fallback string) (string, error) {
	st, err := a.Station(f)
	if err != nil {
		return "", err
	}
	if name := strings.TrimSpace(st.Name); name != "" {
		return name, nil
	}
	return fallback, nil
}

func persons(n int) string {
	if n == 1 {
		return "1 Person an Bord"
	}
	return fmt.Sprintf("%d Personen an Bord", n)
}
