package holiday

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	icsMaxFileSize  = 5 * 1024 * 1024
	icsFetchTimeout = 30 * time.Second
	icsDateLayout   = "20060102"
)

// ParseICS turns the all-day VEVENTs of an iCalendar stream into holidays.
// Multi-day events produce one holiday per day; DTEND is exclusive as in RFC 5545.
// Timed events are skipped.
func ParseICS(r io.Reader) ([]Holiday, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(r, icsMaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	var out []Holiday
	seen := make(map[string]struct{})
	for _, evt := range cal.Events() {
		summary := evt.GetProperty(ics.ComponentPropertySummary)
		if summary == nil || strings.TrimSpace(summary.Value) == "" {
			continue
		}
		start, ok := parseICSDate(evt.GetProperty(ics.ComponentPropertyDtStart))
		if !ok {
			continue
		}
		end, ok := parseICSDate(evt.GetProperty(ics.ComponentPropertyDtEnd))
		if !ok || !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}

		var note *string
		if desc := evt.GetProperty(ics.ComponentPropertyDescription); desc != nil && desc.Value != "" {
			v := unescapeICSText(desc.Value)
			note = &v
		}
		title := unescapeICSText(strings.TrimSpace(summary.Value))

		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			key := d.Format(icsDateLayout) + "|" + title
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, Holiday{Date: d, Title: title, Note: note})
		}
	}
	return out, nil
}

// parseICSDate accepts only date values (VALUE=DATE); date-times are not holidays.
func parseICSDate(prop *ics.IANAProperty) (time.Time, bool) {
	if prop == nil {
		return time.Time{}, false
	}
	val := strings.TrimSpace(prop.Value)
	if len(val) != len(icsDateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(icsDateLayout, val)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

var icsTextReplacer = strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)

func unescapeICSText(s string) string {
	return icsTextReplacer.Replace(s)
}

// FetchICS downloads a calendar from rawURL. webcal:// is treated as https://.
func FetchICS(ctx context.Context, client *http.Client, rawURL string) (io.ReadCloser, error) {
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}
	if client == nil {
		client = &http.Client{Timeout: icsFetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch calendar: unexpected status %d", resp.StatusCode)
	}
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}
