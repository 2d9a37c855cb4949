package harvest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
)

// Defaults used when a listing card omits a field.
const (
	defaultLocation = "Maharashtra"
	defaultFees     = "Contact college for fee details"
	defaultRating   = "Not rated"
	defaultProcess  = "Entrance exam based (JEE/MHT-CET)"
)

// Source is one HTML listing source. Parse is separated from fetching so
// parsers are testable against static markup.
type Source struct {
	Name  string
	URL   string
	Parse func(*goquery.Document) []catalog.College
}

// Sources returns the HTML listing sources in reconciliation order.
// Earlier sources take field precedence during the merge.
func Sources() []Source {
	return []Source{
		{
			Name:  "shiksha",
			URL:   "https://www.shiksha.com/b-tech/colleges/b-tech-colleges-maharashtra",
			Parse: ParseShiksha,
		},
		{
			Name:  "collegedunia",
			URL:   "https://collegedunia.com/btech/maharashtra-colleges",
			Parse: ParseCollegeDunia,
		},
		{
			Name:  "getmyuni",
			URL:   "https://www.getmyuni.com/engineering-colleges-in-maharashtra",
			Parse: ParseGetMyUni,
		},
	}
}

// ParseShiksha extracts college records from a Shiksha listing page.
func ParseShiksha(doc *goquery.Document) []catalog.College {
	var colleges []catalog.College

	doc.Find(".tuple-clg-card").Each(func(_ int, card *goquery.Selection) {
		nameElem := card.Find(".tuple-clg-heading a").First()
		name := strings.TrimSpace(nameElem.Text())
		if name == "" {
			return
		}

		website := ""
		if href, ok := nameElem.Attr("href"); ok {
			website = "https://www.shiksha.com" + href
		}

		colleges = append(colleges, catalog.College{
			Name:             name,
			Location:         textOrDefault(card.Find(".loc-icn"), defaultLocation),
			Website:          website,
			Fees:             textOrDefault(card.Find(".fee-col p"), defaultFees),
			Rating:           textOrDefault(card.Find(".rating-col .rating-val"), defaultRating),
			Courses:          catalog.Many("B.Tech", "Engineering"),
			AdmissionProcess: defaultProcess,
			Source:           "Shiksha",
		})
	})

	return colleges
}

// ParseCollegeDunia extracts college records from a CollegeDunia listing
// page.
func ParseCollegeDunia(doc *goquery.Document) []catalog.College {
	var colleges []catalog.College

	doc.Find(".college_listing").Each(func(_ int, card *goquery.Selection) {
		nameElem := card.Find(".college_name a").First()
		name := strings.TrimSpace(nameElem.Text())
		if name == "" {
			return
		}

		website := ""
		if href, ok := nameElem.Attr("href"); ok {
			website = "https://collegedunia.com" + href
		}

		colleges = append(colleges, catalog.College{
			Name:             name,
			Location:         textOrDefault(card.Find(".clg-loc-rev span"), defaultLocation),
			Website:          website,
			Fees:             textOrDefault(card.Find(".fee_component"), defaultFees),
			Rating:           textOrDefault(card.Find(".rating_val"), defaultRating),
			Courses:          catalog.Many("B.Tech", "Engineering"),
			AdmissionProcess: defaultProcess,
			Source:           "CollegeDunia",
		})
	})

	return colleges
}

// ParseGetMyUni extracts college records from a GetMyUni listing page.
func ParseGetMyUni(doc *goquery.Document) []catalog.College {
	var colleges []catalog.College

	doc.Find(".clg-list-card").Each(func(_ int, card *goquery.Selection) {
		nameElem := card.Find(".clg-name a").First()
		name := strings.TrimSpace(nameElem.Text())
		if name == "" {
			return
		}

		website := ""
		if href, ok := nameElem.Attr("href"); ok {
			website = "https://www.getmyuni.com" + href
		}

		colleges = append(colleges, catalog.College{
			Name:             name,
			Location:         textOrDefault(card.Find(".location-name"), defaultLocation),
			Website:          website,
			Fees:             textOrDefault(card.Find(".fees-str"), defaultFees),
			Rating:           textOrDefault(card.Find(".rating"), defaultRating),
			Courses:          catalog.Many("B.Tech", "Engineering"),
			AdmissionProcess: defaultProcess,
			Source:           "GetMyUni",
		})
	})

	return colleges
}

// textOrDefault returns the trimmed text of the first matched element, or
// the fallback when the selection is empty or blank.
func textOrDefault(sel *goquery.Selection, fallback string) string {
	text := strings.TrimSpace(sel.First().Text())
	if text == "" {
		return fallback
	}
	return text
}
