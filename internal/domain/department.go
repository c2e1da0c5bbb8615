package domain

// Department summarizes an organizational unit derived from the directory.
type Department struct {
	Name      string `json:"name"`
	Headcount int    `json:"headcount"`
}
