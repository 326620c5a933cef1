package helper

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"veritime.com/veritime/attendance/model"
	"veritime.com/veritime/utils"
)

type EmailInfo struct {
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// FindOpenRecords returns the day's attendance records still missing a
// clock-out.
func FindOpenRecords(db *gorm.DB, date string) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := db.Where("date = ?", date).Order("username").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return utils.Filter(records, func(r model.AttendanceRecord) bool {
		return !r.Closed()
	}), nil
}

// BuildReminderEmail assembles the per-tenant summary sent to the tenant's
// contact address, with the open records attached as CSV.
func BuildReminderEmail(from, to, tenant, date string, records []model.AttendanceRecord) *EmailInfo {
	var text strings.Builder
	fmt.Fprintf(&text, "The following %s staff have not checked out for %s:\r\n\r\n", tenant, date)
	for _, r := range records {
		fmt.Fprintf(&text, "  %s (clocked in %s)\r\n", r.Username, r.ClockIn)
	}
	text.WriteString("\r\nRecords left open are closed as half-day at the next payroll run.\r\n")

	var html strings.Builder
	fmt.Fprintf(&html, "<p>The following <b>%s</b> staff have not checked out for %s:</p><ul>", tenant, date)
	for _, r := range records {
		fmt.Fprintf(&html, "<li>%s (clocked in %s)</li>", r.Username, r.ClockIn)
	}
	html.WriteString("</ul><p>Records left open are closed as half-day at the next payroll run.</p>")

	return &EmailInfo{
		From:    from,
		To:      []string{to},
		Subject: fmt.Sprintf("Missing checkouts for %s (%s)", tenant, date),
		Text:    text.String(),
		HTML:    html.String(),
		Attachments: []Attachment{
			{
				Filename:    fmt.Sprintf("open-records-%s.csv", date),
				ContentType: "text/csv",
				Content:     recordsCSV(records),
			},
		},
	}
}

func recordsCSV(records []model.AttendanceRecord) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"username", "date", "clock_in", "status"})
	for _, r := range records {
		w.Write([]string{r.Username, r.Date, r.ClockIn, r.Status})
	}
	w.Flush()
	return buf.Bytes()
}
