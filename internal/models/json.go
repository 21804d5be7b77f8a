package models

import "encoding/json"

// Calendar dates go over the wire as YYYY-MM-DD, not as timestamps.

func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	return json.Marshal(struct {
		plain
		DueDate string `json:"due_date"`
	}{plain(t), FormatDate(t.DueDate)})
}

func (m Milestone) MarshalJSON() ([]byte, error) {
	type plain Milestone
	return json.Marshal(struct {
		plain
		Date string `json:"date"`
	}{plain(m), FormatDate(m.Date)})
}
