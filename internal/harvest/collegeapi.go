package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
)

// CollegeAPIName labels the JSON API source in logs, metrics and the
// cache. It runs after the HTML sources in reconciliation order.
const CollegeAPIName = "collegeapi"

// DefaultCollegeAPIBaseURL is the public collegeAPI deployment.
const DefaultCollegeAPIBaseURL = "https://collegeapi.vercel.app"

// collegeAPIPaths are the endpoints queried per run: the statewide list,
// the NIRF-ranked list, and the major city lists.
var collegeAPIPaths = []string{
	"/engineering_colleges/state=Maharashtra",
	"/engineering_colleges/nirf",
	"/engineering_colleges/city=Mumbai",
	"/engineering_colleges/city=Pune",
	"/engineering_colleges/city=Nagpur",
}

// flexString decodes a JSON string or number into a string, for API
// fields that switch between the two across endpoints.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

type apiCollege struct {
	Name             string             `json:"name"`
	City             string             `json:"city"`
	State            string             `json:"state"`
	Website          string             `json:"website"`
	Fees             flexString         `json:"fees"`
	NIRFRank         flexString         `json:"nirf_rank"`
	Courses          catalog.StringList `json:"courses"`
	AdmissionProcess string             `json:"admission_process"`
	Established      flexString         `json:"established"`
	Type             string             `json:"type"`
	ApprovedBy       catalog.StringList `json:"approved_by"`
	Address          string             `json:"address"`
}

type apiResponse struct {
	Data []apiCollege `json:"data"`
}

// FetchCollegeAPI queries every collegeAPI endpoint and concatenates the
// results into one batch. A failing endpoint is skipped; the error is
// returned only when every endpoint failed.
func FetchCollegeAPI(ctx context.Context, client *Client, baseURL string) ([]catalog.College, error) {
	var colleges []catalog.College
	var lastErr error
	failures := 0

	for _, path := range collegeAPIPaths {
		var payload apiResponse
		if err := client.GetJSON(ctx, baseURL+path, &payload); err != nil {
			failures++
			lastErr = err
			continue
		}

		for _, entry := range payload.Data {
			if entry.Name == "" {
				continue
			}
			colleges = append(colleges, convertAPICollege(entry))
		}
	}

	if failures == len(collegeAPIPaths) {
		return nil, fmt.Errorf("all collegeAPI endpoints failed: %w", lastErr)
	}
	return colleges, nil
}

// convertAPICollege maps an API entry onto the catalog record, filling
// the same defaults the HTML sources use.
func convertAPICollege(entry apiCollege) catalog.College {
	state := entry.State
	if state == "" {
		state = defaultLocation
	}
	location := state
	if entry.City != "" {
		location = entry.City + ", " + state
	}

	rating := strings.TrimSpace(string(entry.NIRFRank))
	if rating == "" {
		rating = defaultRating
	} else {
		rating = "NIRF rank " + rating
	}

	fees := strings.TrimSpace(string(entry.Fees))
	if fees == "" {
		fees = defaultFees
	}

	courses := entry.Courses
	if courses.IsEmpty() {
		courses = catalog.Many("B.Tech", "Engineering")
	}

	process := entry.AdmissionProcess
	if process == "" {
		process = defaultProcess
	}

	return catalog.College{
		Name:             entry.Name,
		Location:         location,
		Website:          entry.Website,
		Fees:             fees,
		Rating:           rating,
		Courses:          courses,
		AdmissionProcess: process,
		Established:      string(entry.Established),
		Type:             entry.Type,
		ApprovedBy:       entry.ApprovedBy,
		Address:          entry.Address,
		Source:           "collegeAPI",
	}
}
