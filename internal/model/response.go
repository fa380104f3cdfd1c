package model

type APIResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *Meta     `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	Total int `json:"total"`
}

type ItemListData struct {
	Items []Item `json:"items"`
}

type ClaimListData struct {
	Claims []ClaimView `json:"claims"`
}

type ActivityListData struct {
	Entries []ActivityLogView `json:"entries"`
}

type UploadData struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type CountData struct {
	Count int `json:"count"`
}
