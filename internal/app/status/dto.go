package status

type Request struct{}

type Response struct {
	SessionID   string   `json:"session_id"`
	Day         int      `json:"day"`
	TimeOfDay   string   `json:"time_of_day"`
	Temperature string   `json:"temperature"`
	Pack        string   `json:"pack"`
	Stash       string   `json:"stash"`
	Hazard      string   `json:"hazard"`
	HazardIn    string   `json:"hazard_in"`
	FreezesIn   string   `json:"freezes_in,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}
