package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"coachingku_backend/internals/configs"
)

const DateLayout = "2006-01-02"

// Fixed weekday table: attendance days always carry the English weekday
// name, whatever locale the caller runs in.
var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func WeekdayName(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}

func appLocation() *time.Location {
	if configs.AppLocation != nil {
		return configs.AppLocation
	}
	return time.UTC
}

// Today returns the current calendar date in the reference timezone,
// truncated to midnight.
func Today() time.Time {
	now := time.Now().In(appLocation())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, appLocation())
}

// ParseDate parses an ISO yyyy-mm-dd string in the reference timezone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), appLocation())
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "date must be in YYYY-MM-DD format")
	}
	return t, nil
}

// ParseDateOrToday: empty input defaults to today (list/record paths).
func ParseDateOrToday(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return Today(), nil
	}
	return ParseDate(s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
