package issue_checkin_code

// Request входные параметры выдачи кода чекина
type Request struct {
	BookingID int64
	ManagerID int64
}

// Response выданный код чекина
type Response struct {
	BookingID   int64
	Code        string
	ExpiresAtMs int64
}
