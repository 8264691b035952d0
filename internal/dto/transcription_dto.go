package dto

type TranscribeResponse struct {
	Text   string `json:"text"`
	URL    string `json:"url"`
	Cached bool   `json:"cached"`
}
