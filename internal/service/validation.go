package service

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nomindnick/worktracker-v1/internal/models"
)

const (
	maxNameLength   = 200
	maxNumberLength = 50
)

// validator collects field errors so that a form reports all of them at once.
type validator struct {
	errs []FieldError
}

func (v *validator) add(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

// required trims value and records message when nothing is left.
func (v *validator) required(field, value, message string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		v.add(field, message)
	}
	return value
}

func (v *validator) maxLength(field, value string, limit int, label string) {
	if utf8.RuneCountInString(value) > limit {
		v.add(field, label+" must be at most "+strconv.Itoa(limit)+" characters.")
	}
}

// priority defaults an empty value to medium.
func (v *validator) priority(field, value string) models.Priority {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.PriorityMedium
	}
	p := models.Priority(value)
	if !p.Valid() {
		v.add(field, "Invalid priority.")
	}
	return p
}

// targetType defaults an empty value to self.
func (v *validator) targetType(field, value string) models.TargetType {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.TargetSelf
	}
	t := models.TargetType(value)
	if !t.Valid() {
		v.add(field, "Invalid target type.")
	}
	return t
}

func (v *validator) date(field, value, label string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		v.add(field, label+" is required.")
		return time.Time{}
	}
	d, err := models.ParseDate(value)
	if err != nil {
		v.add(field, label+" must be a valid date (YYYY-MM-DD).")
		return time.Time{}
	}
	return d
}

// hours parses an optional non-negative number. Blank input means unset.
func (v *validator) hours(field, value, label string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	h, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		v.add(field, label+" must be a number.")
		return nil
	}
	if h < 0 {
		v.add(field, label+" must be a non-negative number.")
		return nil
	}
	return &h
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return NewValidationErrors(v.errs)
}
