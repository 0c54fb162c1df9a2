/*
# Module: notify/render.go
HTML and plain-text rendering for summary emails.

## Linked Modules
- [types/summary](../types/summary.go) - Summary structures

## Tags
notify, email, template

## Exports
RenderHTML, RenderText, SubjectFor

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "notify/render.go" ;
    code:description "HTML and plain-text rendering for summary emails" ;
    code:linksTo [
        code:name "types/summary" ;
        code:path "../types/summary.go" ;
        code:relationship "Summary structures"
    ] ;
    code:exports :RenderHTML, :RenderText, :SubjectFor ;
    code:tags "notify", "email", "template" .
<!-- End LinkedDoc RDF -->
*/
package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"location-ingest/summary"
	"location-ingest/types"
)

var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #1f2937;">
  <h2 style="color: #667eea;">📍 Location Summary</h2>
  <p>Device: <strong>{{.DeviceID}}</strong></p>
  <p>{{.WindowStart.Format "Jan 2, 2006 15:04 MST"}} to {{.WindowEnd.Format "Jan 2, 2006 15:04 MST"}}</p>
  <p>Total locations recorded: <strong>{{.TotalLocations}}</strong></p>
{{if .Primary}}
  <h3>Primary location</h3>
  <p><strong>{{.Primary.State}}, {{.Primary.Country}}</strong> with {{.Primary.Count}} visits</p>
{{end}}
{{if .Places}}
  <h3>Places visited</h3>
  <table border="0" cellpadding="6" style="border-collapse: collapse;">
    <tr style="background: #f9fafb;"><th align="left">Place</th><th align="right">Visits</th><th align="left">First seen</th><th align="left">Last seen</th></tr>
    {{range .Places}}
    <tr><td>{{.State}}, {{.Country}}</td><td align="right">{{.Count}}</td><td>{{.FirstSeen.Format "Jan 2 15:04"}}</td><td>{{.LastSeen.Format "Jan 2 15:04"}}</td></tr>
    {{end}}
  </table>
{{end}}
{{if .Days}}
  <h3>Daily breakdown</h3>
  <table border="0" cellpadding="6" style="border-collapse: collapse;">
    <tr style="background: #f9fafb;"><th align="left">Date</th><th align="right">Locations</th><th align="left">Places</th></tr>
    {{range .Days}}
    <tr><td>{{.Date}}</td><td align="right">{{.Count}}</td><td>{{range $i, $p := .Places}}{{if $i}}; {{end}}{{$p}}{{end}}</td></tr>
    {{end}}
  </table>
{{end}}
{{if eq .TotalLocations 0}}
  <p>No locations were recorded in this window.</p>
{{end}}
</body>
</html>`))

// RenderHTML renders the HTML email body for a summary.
func RenderHTML(s types.Summary) (string, error) {
	var out strings.Builder
	if err := summaryTemplate.Execute(&out, s); err != nil {
		return "", fmt.Errorf("failed to render summary email: %w", err)
	}
	return out.String(), nil
}

// RenderText renders the plain-text alternative body.
func RenderText(s types.Summary) string {
	var out strings.Builder

	fmt.Fprintf(&out, "Location Summary for device %s\n", s.DeviceID)
	fmt.Fprintf(&out, "Window: %s to %s\n",
		s.WindowStart.Format("Jan 2, 2006 15:04 MST"),
		s.WindowEnd.Format("Jan 2, 2006 15:04 MST"))
	fmt.Fprintf(&out, "Total locations recorded: %d\n", s.TotalLocations)

	if s.Primary != nil {
		fmt.Fprintf(&out, "\nPrimary location: %s, %s (%d visits)\n", s.Primary.State, s.Primary.Country, s.Primary.Count)
	}

	if len(s.Places) > 0 {
		out.WriteString("\nPlaces visited:\n")
		for _, place := range s.Places {
			fmt.Fprintf(&out, "  %s, %s: %d visits (%s to %s)\n",
				place.State, place.Country, place.Count,
				place.FirstSeen.Format("Jan 2 15:04"),
				place.LastSeen.Format("Jan 2 15:04"))
		}
	}

	if len(s.Days) > 0 {
		out.WriteString("\nDaily breakdown:\n")
		for _, day := range s.Days {
			fmt.Fprintf(&out, "  %s: %d locations (%s)\n", day.Date, day.Count, strings.Join(day.Places, "; "))
		}
	}

	if s.TotalLocations == 0 {
		out.WriteString("\nNo locations were recorded in this window.\n")
	}

	return out.String()
}

// SubjectFor builds the subject line, stamped with the current
// month/day in the summary time zone.
func SubjectFor(now time.Time) string {
	return fmt.Sprintf("Location Summary for %s", now.In(summary.Zone()).Format("January 2"))
}
