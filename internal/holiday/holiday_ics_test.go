package holiday_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/holiday"

	"github.com/stretchr/testify/assert"
)

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//holidays//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:new-year@test\r\n" +
	"DTSTART;VALUE=DATE:20250101\r\n" +
	"DTEND;VALUE=DATE:20250102\r\n" +
	"SUMMARY:New Year\r\n" +
	"DESCRIPTION:Public holiday\\, nationwide\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:songkran@test\r\n" +
	"DTSTART;VALUE=DATE:20250413\r\n" +
	"DTEND;VALUE=DATE:20250416\r\n" +
	"SUMMARY:Songkran\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:meeting@test\r\n" +
	"DTSTART:20250110T090000Z\r\n" +
	"DTEND:20250110T100000Z\r\n" +
	"SUMMARY:Team meeting\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:labour@test\r\n" +
	"DTSTART;VALUE=DATE:20250501\r\n" +
	"SUMMARY:Labour Day\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseICS(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		got, err := holiday.ParseICS(strings.NewReader(sampleICS))

		assert.NoError(t, err)
		assert.Len(t, got, 5)

		dates := make([]string, 0, len(got))
		for _, h := range got {
			dates = append(dates, h.Date.Format("2006-01-02")+" "+h.Title)
		}
		assert.Equal(t, []string{
			"2025-01-01 New Year",
			"2025-04-13 Songkran",
			"2025-04-14 Songkran",
			"2025-04-15 Songkran",
			"2025-05-01 Labour Day",
		}, dates)

		if assert.NotNil(t, got[0].Note) {
			assert.Equal(t, "Public holiday, nationwide", *got[0].Note)
		}
		assert.Nil(t, got[1].Note)
	})

	t.Run("negative - not a calendar", func(t *testing.T) {
		_, err := holiday.ParseICS(strings.NewReader("hello world"))

		assert.Error(t, err)
	})
}

func TestFetchICS(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/calendar")
			_, _ = w.Write([]byte(sampleICS))
		}))
		defer srv.Close()

		body, err := holiday.FetchICS(context.Background(), srv.Client(), srv.URL)
		assert.NoError(t, err)
		defer body.Close()

		got, err := holiday.ParseICS(body)
		assert.NoError(t, err)
		assert.Len(t, got, 5)
	})

	t.Run("negative - upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := holiday.FetchICS(context.Background(), srv.Client(), srv.URL)

		assert.Error(t, err)
	})
}
