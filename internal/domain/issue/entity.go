package issue

type EntityID int

type Entity struct {
	Number     EntityID
	NodeID     string
	Title      string
	URL        string
	Repository string
	Labels     []string
}

// Draft is the payload sent when creating an issue.
type Draft struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}
