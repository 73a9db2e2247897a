package models

// FeedbackRequest is the JSON body posted by the feedback form
type FeedbackRequest struct {
	Code    string `json:"code"`
	Rating  any    `json:"rating"`
	Comment string `json:"comment"`
	Contact string `json:"contact"`
}

// ClientMeta is caller metadata taken from request headers
type ClientMeta struct {
	UserAgent string
	IP        string
}

// FeedbackRecord is one row of the feedback table. Nil pointers are stored
// as NULL.
type FeedbackRecord struct {
	PuzzleCode *string `json:"puzzle_code" db:"puzzle_code"`
	Rating     int     `json:"rating" db:"rating" validate:"min=1,max=5"`
	Comment    string  `json:"comment" db:"comment" validate:"required,min=3,max=2000"`
	Contact    *string `json:"contact" db:"contact"`
	UserAgent  *string `json:"user_agent" db:"user_agent"`
	IP         *string `json:"ip" db:"ip"`
}

// FeedbackAccepted is the success body of a feedback submission
type FeedbackAccepted struct {
	Success bool `json:"success"`
}
