package models

// SignRequest is the optional JSON body of an upload-signature request
type SignRequest struct {
	Folder string `json:"folder"`
}

// SignResponse carries everything the upload widget needs to perform a
// signed upload. The API secret is deliberately absent.
type SignResponse struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Timestamp int64  `json:"timestamp"`
	Folder    string `json:"folder"`
	Signature string `json:"signature"`
}
