package model

// Candidate is one ranked collaborator returned by the recommendation
// service, after normalization. MatchScore is a 0-1 match fraction.
type Candidate struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Skills            []string `json:"skills"`
	MatchScore        float64  `json:"match_score"`
	Certifications    []string `json:"certifications"`
	Location          string   `json:"location"`
	Availability      string   `json:"availability"`
	ProjectsCompleted int      `json:"projects_completed"`
	Feedback          float64  `json:"feedback"`
}
