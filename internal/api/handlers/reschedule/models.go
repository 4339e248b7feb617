package reschedule

// ProposeRequest тело запроса предложения или запроса переноса
type ProposeRequest struct {
	StartAtMs int64   `json:"startAtMs"`
	Note      *string `json:"note,omitempty"`
}

// RespondRequest тело ответа на предложение переноса
type RespondRequest struct {
	Accept bool `json:"accept"`
}
