package reservation

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/seatwise/seatwise/internal/domain"
)

func TestNewCancelToken(t *testing.T) {
	hexRe := regexp.MustCompile(`^[0-9a-f]{32}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewCancelToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !hexRe.MatchString(token) {
			t.Fatalf("token %q is not 32 hex chars", token)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}

func TestCancelTokenHiddenFromJSON(t *testing.T) {
	res := Reservation{ID: "res1", CancelToken: "secret"}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Fatalf("cancel token leaked into JSON: %s", data)
	}
}

func TestWindowContains(t *testing.T) {
	ranged := Window{From: "18:00", To: "21:00"}
	if !ranged.Contains("18:00") || !ranged.Contains("20:59") {
		t.Fatal("in-range times not contained")
	}
	if ranged.Contains("21:00") || ranged.Contains("17:59") {
		t.Fatal("out-of-range times contained")
	}
	if ranged.Exact() {
		t.Fatal("ranged window reported exact")
	}

	exact := Window{From: "19:30", To: "19:30"}
	if !exact.Exact() {
		t.Fatal("exact window not reported exact")
	}
	if !exact.Contains("19:30") || exact.Contains("19:31") {
		t.Fatal("exact window contains wrong times")
	}
}

func TestCreateRequestValidate(t *testing.T) {
	req := CreateRequest{
		Date:          "2030-06-15",
		Time:          "19:00",
		CustomerName:  "  Ada Lovelace  ",
		CustomerEmail: "Ada@Example.COM",
		GroupSize:     4,
	}

	day, err := req.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !day.Equal(time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day: %v", day)
	}
	if req.CustomerName != "Ada Lovelace" {
		t.Fatalf("name not trimmed: %q", req.CustomerName)
	}
	if req.CustomerEmail != "ada@example.com" {
		t.Fatalf("email not normalized: %q", req.CustomerEmail)
	}
}

func TestCreateRequestValidateRFC3339Date(t *testing.T) {
	req := CreateRequest{
		Date:          "2030-06-15T22:30:00+05:00", // 17:30 UTC, same UTC day
		Time:          "19:00",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		GroupSize:     2,
	}

	day, err := req.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !day.Equal(time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day: %v", day)
	}
}

func TestCreateRequestValidateErrors(t *testing.T) {
	base := CreateRequest{
		Date:          "2030-06-15",
		Time:          "19:00",
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		GroupSize:     2,
	}

	cases := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"empty name", func(r *CreateRequest) { r.CustomerName = "  " }},
		{"no at sign", func(r *CreateRequest) { r.CustomerEmail = "ada.example.com" }},
		{"no domain dot", func(r *CreateRequest) { r.CustomerEmail = "ada@localhost" }},
		{"zero group", func(r *CreateRequest) { r.GroupSize = 0 }},
		{"negative group", func(r *CreateRequest) { r.GroupSize = -3 }},
		{"bad time", func(r *CreateRequest) { r.Time = "7pm" }},
		{"bad date", func(r *CreateRequest) { r.Date = "June 15th" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			if _, err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2030-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !day.Equal(time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day: %v", day)
	}

	for _, bad := range []string{
		"2030-06-15T18:30:00Z",
		"2030-06-15T18:30:00+05:00",
		"15-06-2030",
		"2030/06/15",
		"",
	} {
		if _, err := ParseDate(bad); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("ParseDate(%q): expected ErrValidation, got %v", bad, err)
		}
	}
}
