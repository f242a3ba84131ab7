package refdata

import (
	"fmt"
	"os"
	"sort"

	"cloud.google.com/go/civil"
	"gopkg.in/yaml.v3"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/pkg/utils"
)

// File is the YAML layout of a problem file. Dates are "2006-01-02",
// instants "2006-01-02 15:04" in UTC and times of day "15:04".
type File struct {
	Horizon     *horizonYAML     `yaml:"horizon,omitempty"`
	Airports    []airportYAML    `yaml:"airports"`
	TaxiTimes   []taxiTimeYAML   `yaml:"taxiTimes,omitempty"`
	MaxFDP      []maxFDPYAML     `yaml:"maxFdp,omitempty"`
	IataFlights []iataFlightYAML `yaml:"iataFlights,omitempty"`
	Flights     []flightYAML     `yaml:"flights,omitempty"`
	Employees   []employeeYAML   `yaml:"employees,omitempty"`
}

type horizonYAML struct {
	First string `yaml:"first"`
	Last  string `yaml:"last"`
}

type airportYAML struct {
	Code      string  `yaml:"code"`
	Name      string  `yaml:"name,omitempty"`
	City      string  `yaml:"city,omitempty"`
	Latitude  float64 `yaml:"latitude,omitempty"`
	Longitude float64 `yaml:"longitude,omitempty"`
}

type taxiTimeYAML struct {
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Minutes int    `yaml:"minutes"`
}

type maxFDPYAML struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	// MaxBySegments maps a segment count to "13:30" or to minutes
	MaxBySegments map[int]string `yaml:"maxBySegments"`
}

type iataFlightYAML struct {
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Departure string `yaml:"departure"`
	Arrival   string `yaml:"arrival"`
	Days      string `yaml:"days"`
}

type flightYAML struct {
	FlightNumber string   `yaml:"flightNumber"`
	From         string   `yaml:"from"`
	To           string   `yaml:"to"`
	Departure    string   `yaml:"departure"`
	Arrival      string   `yaml:"arrival"`
	AircraftType string   `yaml:"aircraftType,omitempty"`
	Registration string   `yaml:"registration,omitempty"`
	Skills       []string `yaml:"skills,omitempty"`
}

type employeeYAML struct {
	Name                  string       `yaml:"name"`
	Home                  string       `yaml:"home"`
	Skills                []string     `yaml:"skills"`
	AircraftTypes         []string     `yaml:"aircraftTypes,omitempty"`
	SpecialQualifications []string     `yaml:"specialQualifications,omitempty"`
	Roster                []rosterYAML `yaml:"roster,omitempty"`
}

type rosterYAML struct {
	Date  string   `yaml:"date"`
	Codes []string `yaml:"codes"`
	Start string   `yaml:"start,omitempty"`
	End   string   `yaml:"end,omitempty"`
}

// Data is a decoded problem file
type Data struct {
	HasHorizon  bool
	FirstDate   civil.Date
	LastDate    civil.Date
	Airports    []entity.Airport
	TaxiTimes   []entity.TaxiTime
	MaxFDP      entity.MaxFDPTable
	IataFlights []entity.IataFlight
	Flights     []entity.FlightRecord
	Employees   []entity.EmployeeRecord
}

// ReadFile reads and decodes a problem file
func ReadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	data, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Parse decodes a problem file
func Parse(raw []byte) (*Data, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return f.decode()
}

func (f *File) decode() (*Data, error) {
	data := &Data{}

	if f.Horizon != nil {
		first, err := utils.ParseDate(f.Horizon.First)
		if err != nil {
			return nil, fmt.Errorf("horizon first: %w", err)
		}
		last, err := utils.ParseDate(f.Horizon.Last)
		if err != nil {
			return nil, fmt.Errorf("horizon last: %w", err)
		}
		data.HasHorizon, data.FirstDate, data.LastDate = true, first, last
	}

	for _, a := range f.Airports {
		data.Airports = append(data.Airports, entity.Airport{
			Code:      entity.AirportCode(a.Code),
			Name:      a.Name,
			City:      a.City,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
		})
	}

	for _, t := range f.TaxiTimes {
		data.TaxiTimes = append(data.TaxiTimes, entity.TaxiTime{
			From:    entity.AirportCode(t.From),
			To:      entity.AirportCode(t.To),
			Minutes: t.Minutes,
		})
	}

	for i, r := range f.MaxFDP {
		rule, err := r.decode()
		if err != nil {
			return nil, fmt.Errorf("maxFdp[%d]: %w", i, err)
		}
		data.MaxFDP = append(data.MaxFDP, rule)
	}

	for i, r := range f.IataFlights {
		flight, err := r.decode()
		if err != nil {
			return nil, fmt.Errorf("iataFlights[%d]: %w", i, err)
		}
		data.IataFlights = append(data.IataFlights, flight)
	}

	for _, r := range f.Flights {
		flight, err := r.decode()
		if err != nil {
			return nil, fmt.Errorf("flight %s: %w", r.FlightNumber, err)
		}
		data.Flights = append(data.Flights, flight)
	}

	for _, r := range f.Employees {
		employee, err := r.decode()
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", r.Name, err)
		}
		data.Employees = append(data.Employees, employee)
	}

	return data, nil
}

func (r maxFDPYAML) decode() (entity.MaxFDPRule, error) {
	start, err := utils.ParseClock(r.Start)
	if err != nil {
		return entity.MaxFDPRule{}, err
	}
	end, err := utils.ParseClock(r.End)
	if err != nil {
		return entity.MaxFDPRule{}, err
	}
	rule := entity.MaxFDPRule{Start: start, End: end}

	segments := make([]int, 0, len(r.MaxBySegments))
	for s := range r.MaxBySegments {
		segments = append(segments, s)
	}
	sort.Ints(segments)
	for _, s := range segments {
		max, err := utils.ParseDuration(r.MaxBySegments[s])
		if err != nil {
			return entity.MaxFDPRule{}, fmt.Errorf("segments %d: %w", s, err)
		}
		rule.SetMax(s, max)
	}
	return rule, nil
}

func (r iataFlightYAML) decode() (entity.IataFlight, error) {
	departure, err := utils.ParseClock(r.Departure)
	if err != nil {
		return entity.IataFlight{}, err
	}
	arrival, err := utils.ParseClock(r.Arrival)
	if err != nil {
		return entity.IataFlight{}, err
	}
	days, err := utils.ParseDaysOfWeek(r.Days)
	if err != nil {
		return entity.IataFlight{}, err
	}
	return entity.IataFlight{
		DepartureAirport: entity.AirportCode(r.From),
		ArrivalAirport:   entity.AirportCode(r.To),
		DepartureUTCTime: departure,
		ArrivalUTCTime:   arrival,
		DaysOfWeek:       days,
	}, nil
}

func (r flightYAML) decode() (entity.FlightRecord, error) {
	departure, err := utils.ParseDateTime(r.Departure)
	if err != nil {
		return entity.FlightRecord{}, err
	}
	arrival, err := utils.ParseDateTime(r.Arrival)
	if err != nil {
		return entity.FlightRecord{}, err
	}
	return entity.FlightRecord{
		FlightNumber:         r.FlightNumber,
		DepartureAirport:     r.From,
		ArrivalAirport:       r.To,
		DepartureUTC:         departure,
		ArrivalUTC:           arrival,
		AircraftType:         r.AircraftType,
		AircraftRegistration: r.Registration,
		RequiredSkills:       r.Skills,
	}, nil
}

func (r employeeYAML) decode() (entity.EmployeeRecord, error) {
	record := entity.EmployeeRecord{
		Name:                       r.Name,
		HomeAirport:                r.Home,
		Skills:                     r.Skills,
		AircraftTypeQualifications: r.AircraftTypes,
		SpecialQualifications:      r.SpecialQualifications,
	}
	for _, day := range r.Roster {
		date, err := utils.ParseDate(day.Date)
		if err != nil {
			return entity.EmployeeRecord{}, err
		}
		entry := entity.RosterEntry{Date: date, Codes: day.Codes}
		if day.Start != "" {
			if entry.Start, err = utils.ParseDateTime(day.Start); err != nil {
				return entity.EmployeeRecord{}, err
			}
		}
		if day.End != "" {
			if entry.End, err = utils.ParseDateTime(day.End); err != nil {
				return entity.EmployeeRecord{}, err
			}
		}
		record.Roster = append(record.Roster, entry)
	}
	return record, nil
}
