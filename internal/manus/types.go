package manus

// Token is a short-lived bearer credential issued by the upstream token
// endpoint. Expiry metadata is recorded but never used to schedule refreshes;
// validity is asserted by the registry's refresh cadence.
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Profile is the upstream identity and work-site metadata for one account.
type Profile struct {
	EmployeeID string `json:"id"`
	Username   string `json:"userName"`
	FullName   string `json:"fullname"`
	NodeID     string `json:"nodeId"`
	NodeCode   string `json:"nodeCode"`
	NodeName   string `json:"nodeName"`
}

// Department classifies where a shift is worked.
type Department struct {
	ID     int    `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"isActive"`
}

// HourCode classifies the paid-time type of a shift.
type HourCode struct {
	ID       int    `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
}

// ShiftEntry is one worked shift. Start and end times are minute offsets local
// to the owning day.
type ShiftEntry struct {
	ID           int     `json:"id"`
	DepartmentID int     `json:"departmentId"`
	HourCodeID   int     `json:"hourCodeId"`
	StartTime    int     `json:"startTime"`
	EndTime      int     `json:"endTime"`
	TotalTime    float64 `json:"totalTime"`
}

// VacationPeriod marks (part of) a day as vacation.
type VacationPeriod struct {
	StartTime int `json:"startTime"`
	EndTime   int `json:"endTime"`
}

// DaySchedule is one day's shifts and vacation markers. Date is a day offset
// from the upstream epoch, decoded by the manustime package.
type DaySchedule struct {
	Date     int              `json:"date"`
	Entries  []ShiftEntry     `json:"entries"`
	Vacation []VacationPeriod `json:"vacation"`
}

// Weekday is label metadata carried in the schedule payload; it is not
// consumed by calendar synthesis.
type Weekday struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// ScheduleWeek is one upstream response for a (node, employee, year, week)
// tuple.
type ScheduleWeek struct {
	Departments map[int]Department `json:"departments"`
	HourCodes   map[int]HourCode   `json:"hourCodes"`
	Schedule    []DaySchedule      `json:"schedule"`
	Weekdays    []Weekday          `json:"weekdays"`
}
