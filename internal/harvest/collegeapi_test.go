package harvest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testHarvestClient() *Client {
	return NewClient(5*time.Second, 0, 0, 0)
}

func TestFetchCollegeAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "state=Maharashtra"):
			_, _ = w.Write([]byte(`{"data":[
				{"name":"COEP","city":"Pune","state":"Maharashtra","nirf_rank":73,"established":1854,"type":"Government"},
				{"name":"","city":"Nowhere"}
			]}`))
		case strings.Contains(r.URL.Path, "nirf"):
			_, _ = w.Write([]byte(`{"data":[
				{"name":"VNIT Nagpur","city":"Nagpur","nirf_rank":"41","courses":"B.Tech","approved_by":["AICTE","UGC"]}
			]}`))
		default:
			_, _ = w.Write([]byte(`{"data":[]}`))
		}
	}))
	defer server.Close()

	colleges, err := FetchCollegeAPI(context.Background(), testHarvestClient(), server.URL)
	if err != nil {
		t.Fatalf("FetchCollegeAPI() failed: %v", err)
	}

	if len(colleges) != 2 {
		t.Fatalf("len = %d, want 2 (nameless entry skipped)", len(colleges))
	}

	coep := colleges[0]
	if coep.Location != "Pune, Maharashtra" {
		t.Errorf("Location = %q", coep.Location)
	}
	// Numeric JSON fields decode as strings
	if coep.Rating != "NIRF rank 73" {
		t.Errorf("Rating = %q", coep.Rating)
	}
	if coep.Established != "1854" {
		t.Errorf("Established = %q", coep.Established)
	}
	if coep.Source != "collegeAPI" {
		t.Errorf("Source = %q", coep.Source)
	}
	// Missing courses fall back to the default pair
	if got := coep.Courses.Values(); len(got) != 2 {
		t.Errorf("Courses = %v", got)
	}

	vnit := colleges[1]
	if vnit.Rating != "NIRF rank 41" {
		t.Errorf("Rating = %q", vnit.Rating)
	}
	// Missing state defaults in the location
	if vnit.Location != "Nagpur, Maharashtra" {
		t.Errorf("Location = %q", vnit.Location)
	}
	// Single-string courses survive as a singleton
	if got := vnit.Courses.Values(); len(got) != 1 || got[0] != "B.Tech" {
		t.Errorf("Courses = %v", got)
	}
	if got := vnit.ApprovedBy.Values(); len(got) != 2 || got[0] != "AICTE" {
		t.Errorf("ApprovedBy = %v", got)
	}
}

func TestFetchCollegeAPIToleratesPartialFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if strings.Contains(r.URL.Path, "nirf") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"name":"Some College"}]}`))
	}))
	defer server.Close()

	colleges, err := FetchCollegeAPI(context.Background(), testHarvestClient(), server.URL)
	if err != nil {
		t.Fatalf("one failing endpoint should not fail the batch: %v", err)
	}
	if len(colleges) != len(collegeAPIPaths)-1 {
		t.Errorf("len = %d, want %d", len(colleges), len(collegeAPIPaths)-1)
	}
}

func TestFetchCollegeAPIAllEndpointsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := FetchCollegeAPI(context.Background(), testHarvestClient(), server.URL); err == nil {
		t.Error("expected error when every endpoint fails")
	}
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"String", `"41"`, "41"},
		{"Integer", `73`, "73"},
		{"Float", `4.5`, "4.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexString
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if string(f) != tt.want {
				t.Errorf("got %q, want %q", f, tt.want)
			}
		})
	}

	var f flexString
	if err := json.Unmarshal([]byte(`["array"]`), &f); err == nil {
		t.Error("expected error for array input")
	}
}
