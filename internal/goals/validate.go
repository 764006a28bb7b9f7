package goals

import (
	"fmt"
	"strings"

	"github.com/Arnav-W-Coder/LevelUp/internal/progress"
)

// AddInput carries the raw fields of the add-goal form. Time fields are
// free-form labels, checked only for structural consistency, never as a
// real clock time.
type AddInput struct {
	Category    progress.Category
	Template    string
	Description string
	Hour        string // 1-2 digits, or empty
	Minute      string // exactly 2 digits, or empty
	Meridiem    string // "AM" or "PM", or empty
}

// ValidationError reports why an add was rejected. A rejected add has
// no side effects.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid goal %s: %s", e.Field, e.Message)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// validate enforces every add-goal condition: non-empty template, and
// the all-or-nothing time triple (hour, minute, meridiem) with 1-2
// digit hours and exactly 2 digit minutes.
func validate(in AddInput) *ValidationError {
	if !in.Category.Valid() {
		return &ValidationError{Field: "category", Message: "unknown category"}
	}
	if strings.TrimSpace(in.Template) == "" {
		return &ValidationError{Field: "template", Message: "a template must be selected"}
	}

	hasHour := in.Hour != ""
	hasMinute := in.Minute != ""
	hasMeridiem := in.Meridiem != ""

	if !hasHour && !hasMinute && !hasMeridiem {
		return nil // no time label at all is fine
	}
	if !hasHour || !hasMinute || !hasMeridiem {
		return &ValidationError{Field: "time", Message: "hour, minute, and AM/PM must be set together"}
	}
	if !isDigits(in.Hour) || len(in.Hour) > 2 {
		return &ValidationError{Field: "hour", Message: "must be 1-2 digits"}
	}
	if !isDigits(in.Minute) || len(in.Minute) != 2 {
		return &ValidationError{Field: "minute", Message: "must be exactly 2 digits"}
	}
	if in.Meridiem != "AM" && in.Meridiem != "PM" {
		return &ValidationError{Field: "meridiem", Message: `must be "AM" or "PM"`}
	}
	return nil
}

// timeLabel formats the validated time triple, trimming a leading zero
// from the hour. Empty when no time was given.
func timeLabel(in AddInput) string {
	if in.Hour == "" {
		return ""
	}
	hour := strings.TrimPrefix(in.Hour, "0")
	return fmt.Sprintf("%s:%s %s", hour, in.Minute, in.Meridiem)
}
