package dto

type RecommendRequest struct {
	Query string `json:"query" validate:"max=2000"`
}

type CandidateDTO struct {
	Title    string  `json:"title"`
	Distance float64 `json:"distance"`
}

type RecommendResponse struct {
	Answer     string         `json:"answer"`
	Title      string         `json:"title,omitempty"`
	AudioURL   string         `json:"audio_url,omitempty"`
	ImageURL   string         `json:"image_url,omitempty"`
	Candidates []CandidateDTO `json:"candidates"`
}

// SynthesizeMediaMessage is the deferred-work payload published after a
// recommendation response has been computed. The consumer renders audio and
// cover; the HTTP client already holds the precomputed URLs.
type SynthesizeMediaMessage struct {
	Answer string   `json:"answer"`
	Title  string   `json:"title,omitempty"`
	Short  string   `json:"short,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Voice  string   `json:"voice,omitempty"`
}
