package helper

import (
	"strings"
	"testing"

	"veritime.com/veritime/attendance/model"
	"veritime.com/veritime/utils"
)

func TestBuildReminderEmail(t *testing.T) {
	records := []model.AttendanceRecord{
		{Username: "alice", Date: "2024-06-12", ClockIn: "09:05", Status: model.StatusPresent},
		{Username: "bob", Date: "2024-06-12", ClockIn: "09:40", Status: model.StatusPresent},
	}

	email := BuildReminderEmail("no-reply@veritime.com", "ops@acme.example", "acme", "2024-06-12", records)

	if email.Subject != "Missing checkouts for acme (2024-06-12)" {
		t.Errorf("unexpected subject: %s", email.Subject)
	}
	if len(email.To) != 1 || email.To[0] != "ops@acme.example" {
		t.Errorf("unexpected recipients: %v", email.To)
	}
	if !strings.Contains(email.Text, "alice (clocked in 09:05)") {
		t.Errorf("text body missing alice: %s", email.Text)
	}
	if !strings.Contains(email.HTML, "<li>bob (clocked in 09:40)</li>") {
		t.Errorf("html body missing bob: %s", email.HTML)
	}

	if len(email.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(email.Attachments))
	}
	att := email.Attachments[0]
	if att.Filename != "open-records-2024-06-12.csv" {
		t.Errorf("unexpected attachment name: %s", att.Filename)
	}
	if !strings.Contains(string(att.Content), "bob,2024-06-12,09:40,present") {
		t.Errorf("unexpected attachment content: %s", att.Content)
	}
}

func TestBuildEmailBuffer(t *testing.T) {
	email := &EmailInfo{
		From:    "no-reply@veritime.com",
		To:      []string{"ops@acme.example"},
		Subject: "Missing checkouts",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
	}

	buf, err := BuildEmailBuffer(email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw := buf.String()
	for _, want := range []string{
		"From: no-reply@veritime.com",
		"To: ops@acme.example",
		"Subject: Missing checkouts",
		"multipart/mixed",
		"multipart/alternative",
		"plain body",
		"html body",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("email missing %q", want)
		}
	}
}

func TestRecordsCSVSkipsClosed(t *testing.T) {
	records := []model.AttendanceRecord{
		{Username: "alice", ClockOut: nil},
		{Username: "bob", ClockOut: utils.Ptr("17:30")},
	}
	open := utils.Filter(records, func(r model.AttendanceRecord) bool { return !r.Closed() })
	if len(open) != 1 || open[0].Username != "alice" {
		t.Errorf("unexpected open records: %+v", open)
	}
}
