package model

// Wire shapes for the Timeless Planner API. Field names follow the server's
// snake_case JSON exactly; display concerns live in the TUI.

type Workspace struct {
	ID   string `json:"team_space_id"`
	Name string `json:"team_space_name"`
}

func (w Workspace) RecordID() string { return w.ID }

type Folder struct {
	ID          string `json:"folder_id"`
	TeamSpaceID string `json:"team_space_id"`
	Name        string `json:"folder_name"`
}

func (f Folder) RecordID() string { return f.ID }

type SubtaskStatus string

const (
	StatusNotStarted SubtaskStatus = "not_started"
	StatusInProgress SubtaskStatus = "in_progress"
	StatusCompleted  SubtaskStatus = "completed"
	StatusOnHold     SubtaskStatus = "on_hold"
)

// SubtaskStatuses lists the accepted values in display order.
func SubtaskStatuses() []SubtaskStatus {
	return []SubtaskStatus{StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold}
}

// Label renders the status for display.
func (s SubtaskStatus) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusOnHold:
		return "On hold"
	}
	return string(s)
}

func ValidSubtaskStatus(s string) bool {
	for _, v := range SubtaskStatuses() {
		if string(v) == s {
			return true
		}
	}
	return false
}

type Subtask struct {
	ID     string        `json:"sub_task_id"`
	TaskID string        `json:"task_id"`
	Name   string        `json:"sub_task_name"`
	Status SubtaskStatus `json:"status"`
}

func (s Subtask) RecordID() string { return s.ID }

type ReminderMedium string

const (
	MediumSMS       ReminderMedium = "sms"
	MediumEmail     ReminderMedium = "email"
	MediumWhatsApp  ReminderMedium = "whatsapp"
	MediumBrowser   ReminderMedium = "browser"
	MediumMobileApp ReminderMedium = "mobile_app"
)

func ReminderMediums() []ReminderMedium {
	return []ReminderMedium{MediumSMS, MediumEmail, MediumWhatsApp, MediumBrowser, MediumMobileApp}
}

func ValidReminderMedium(s string) bool {
	for _, v := range ReminderMediums() {
		if string(v) == s {
			return true
		}
	}
	return false
}

type ReminderTime struct {
	ReminderTime string `json:"reminder_time"`
	Triggered    bool   `json:"triggered"`
}

// EventReminder is the request body for create-event-reminder. ReminderTimes
// keeps the order the user added them in; duplicates are allowed and sent as-is.
type EventReminder struct {
	Message       string         `json:"message"`
	Medium        ReminderMedium `json:"medium"`
	ReminderTimes []ReminderTime `json:"reminder_times"`
}

type Session struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email,omitempty"`
}

func (s Session) Authenticated() bool { return s.AccessToken != "" }
