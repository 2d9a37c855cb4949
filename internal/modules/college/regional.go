package college

import (
	"fmt"
	"sort"
	"strings"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/chat"
	"github.com/margdarshak/margdarshak-go/internal/textnorm"
)

const (
	maxRanked     = 5
	maxAffordable = 15
)

// Known cities for the geography filter, matched by substring against the
// query and against record locations.
var cities = []string{
	"mumbai", "pune", "nagpur", "aurangabad", "nashik",
	"amravati", "solapur", "kolhapur", "thane", "navi mumbai",
}

// Canonical course names per field. A record passes the course filter
// when any of its course names, lowercased, is exactly in the set.
var (
	engineeringCourses = []string{"b.tech", "engineering", "b.e."}
	medicalCourses     = []string{"mbbs", "medical", "medicine"}
	managementCourses  = []string{"mba", "management", "business", "pgdm"}

	governmentTypes = []string{"government", "govt", "public"}

	affordabilityKeywords = []string{"affordable", "cheap", "low fee"}
)

// handleRegional runs the filter pipeline over the harvested Maharashtra
// catalog: geography, field, institution type, affordability, then the
// rating ranker. Filters narrow sequentially without backtracking.
func (h *Handler) handleRegional(query, greeting string) string {
	all := h.regional.Snapshot()
	filtered := all
	lowered := strings.ToLower(query)

	header := greeting + "Here's what I found about colleges in Maharashtra related to your query:\n\n"

	for _, city := range cities {
		if strings.Contains(lowered, city) {
			filtered = filterByCity(filtered, city)
			header = fmt.Sprintf("%sHere's what I found about colleges in %s, Maharashtra:\n\n", greeting, titleCase(city))
			break
		}
	}

	switch {
	case chat.ContainsAny(query, engineeringKeywords):
		filtered = filterByCourses(filtered, engineeringCourses)
		header = qualifyHeader(header, "engineering")
	case chat.ContainsAny(query, medicalKeywords):
		filtered = filterByCourses(filtered, medicalCourses)
		header = qualifyHeader(header, "medical")
	case chat.ContainsAny(query, managementKeywords):
		filtered = filterByCourses(filtered, managementCourses)
		header = qualifyHeader(header, "management")
	}

	if strings.Contains(lowered, "government") || strings.Contains(lowered, "govt") {
		filtered = filterByType(filtered, governmentTypes)
		header = qualifyHeader(header, "government")
	} else if strings.Contains(lowered, "private") {
		filtered = filterByType(filtered, []string{"private"})
		header = qualifyHeader(header, "private")
	}

	if chat.ContainsAny(query, affordabilityKeywords) {
		filtered = cheapest(filtered, maxAffordable)
		header = qualifyHeader(header, "affordable")
	}

	top := rankByRating(filtered, maxRanked)

	var sb strings.Builder
	sb.WriteString(header)

	if len(top) == 0 {
		sb.WriteString("I couldn't find specific colleges matching your query in Maharashtra. Here are some top colleges in Maharashtra instead:\n\n")
		top = all
		if len(top) > maxRanked {
			top = top[:maxRanked]
		}
	}

	for i, college := range top {
		writeCollege(&sb, i+1, college)
	}

	sb.WriteString("Would you like more specific information about any of these colleges or a different location in Maharashtra?")

	return sb.String()
}

// qualifyHeader renames the response header, e.g. "colleges in" becomes
// "engineering colleges in".
func qualifyHeader(header, qualifier string) string {
	return strings.Replace(header, "colleges in", qualifier+" colleges in", 1)
}

func filterByCity(colleges []catalog.College, city string) []catalog.College {
	var out []catalog.College
	for _, c := range colleges {
		if strings.Contains(strings.ToLower(c.Location), city) {
			out = append(out, c)
		}
	}
	return out
}

func filterByCourses(colleges []catalog.College, canonical []string) []catalog.College {
	var out []catalog.College
	for _, c := range colleges {
		if hasAnyCourse(c.Courses, canonical) {
			out = append(out, c)
		}
	}
	return out
}

func hasAnyCourse(courses catalog.StringList, canonical []string) bool {
	for _, course := range courses.Values() {
		lowered := strings.ToLower(course)
		for _, want := range canonical {
			if lowered == want {
				return true
			}
		}
	}
	return false
}

func filterByType(colleges []catalog.College, types []string) []catalog.College {
	var out []catalog.College
	for _, c := range colleges {
		lowered := strings.ToLower(c.Type)
		for _, want := range types {
			if lowered == want {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// cheapest sorts ascending by extracted fee amount and keeps at most n.
// Unparsable fees sort as unbounded cost.
func cheapest(colleges []catalog.College, n int) []catalog.College {
	out := make([]catalog.College, len(colleges))
	copy(out, colleges)
	sort.SliceStable(out, func(i, j int) bool {
		return textnorm.ExtractFeeAmount(out[i].Fees) < textnorm.ExtractFeeAmount(out[j].Fees)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// rankByRating sorts descending by normalized rating, stable so equal
// scores preserve prior relative order, and keeps at most n.
func rankByRating(colleges []catalog.College, n int) []catalog.College {
	out := make([]catalog.College, len(colleges))
	copy(out, colleges)
	sort.SliceStable(out, func(i, j int) bool {
		return textnorm.NormalizeRating(out[i].Rating) > textnorm.NormalizeRating(out[j].Rating)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// writeCollege renders one numbered entry, including only the fields the
// record actually carries.
func writeCollege(sb *strings.Builder, position int, c catalog.College) {
	location := c.Location
	if location == "" {
		location = "region unknown"
	}
	fmt.Fprintf(sb, "%d. %s (%s)\n", position, c.Name, location)

	if c.Source != "" {
		fmt.Fprintf(sb, "   • Source: %s\n", c.Source)
	}
	if c.Type != "" {
		fmt.Fprintf(sb, "   • Type: %s\n", c.Type)
	}
	if c.Established != "" {
		fmt.Fprintf(sb, "   • Established: %s\n", c.Established)
	}
	if c.Rating != "" {
		if textnorm.RatingScale(c.Rating) == textnorm.ScaleRank {
			fmt.Fprintf(sb, "   • NIRF Ranking: %s\n", c.Rating)
		} else {
			fmt.Fprintf(sb, "   • Rating: %s\n", c.Rating)
		}
	}
	if c.Fees != "" {
		fmt.Fprintf(sb, "   • Fees: %s\n", c.Fees)
	}
	if courses := c.Courses.Values(); len(courses) > 0 {
		if len(courses) > 3 {
			courses = courses[:3]
		}
		fmt.Fprintf(sb, "   • Courses: %s\n", strings.Join(courses, ", "))
	}
	if c.AdmissionProcess != "" {
		fmt.Fprintf(sb, "   • Admission: %s\n", c.AdmissionProcess)
	}
	if approvers := c.ApprovedBy.Values(); len(approvers) > 0 {
		if len(approvers) > 3 {
			approvers = approvers[:3]
		}
		fmt.Fprintf(sb, "   • Approved by: %s\n", strings.Join(approvers, ", "))
	}
	if c.Address != "" {
		fmt.Fprintf(sb, "   • Address: %s\n", c.Address)
	}
	if c.Website != "" {
		fmt.Fprintf(sb, "   • Website: %s\n", c.Website)
	}

	sb.WriteString("\n")
}

// titleCase capitalizes each space-separated word, for city names in
// response headers.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
