package services

import (
	"os"
	"time"
)

// School-local time drives the daily queue id; SCHOOL_TZ overrides the
// default zone.
var schoolLoc *time.Location

func init() {
	name := os.Getenv("SCHOOL_TZ")
	if name == "" {
		name = "Asia/Jakarta"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		// fallback to UTC if the tzdata is missing (unlikely on Ubuntu)
		schoolLoc = time.UTC
		return
	}
	schoolLoc = loc
}

// DayID renders a moment as the canonical YYYYMMDD school-day id.
func DayID(t time.Time) string {
	return t.In(schoolLoc).Format("20060102")
}

// TodayID is the id the lifecycle manager uses when starting a queue.
func TodayID() string {
	return DayID(time.Now())
}
