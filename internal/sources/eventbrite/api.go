package eventbrite

// searchResponse is the subset of the event search payload the adapter reads.
type searchResponse struct {
	Events     []apiEvent `json:"events"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	HasMoreItems bool   `json:"has_more_items"`
	Continuation string `json:"continuation"`
}

type apiEvent struct {
	Name        textField  `json:"name"`
	Description textField  `json:"description"`
	URL         string     `json:"url"`
	Start       dateTime   `json:"start"`
	OnlineEvent bool       `json:"online_event"`
	Venue       *venue     `json:"venue"`
	Organizer   *organizer `json:"organizer"`
}

type textField struct {
	Text string `json:"text"`
}

type dateTime struct {
	Local string `json:"local"`
}

type venue struct {
	Address address `json:"address"`
}

type address struct {
	City   string `json:"city"`
	Region string `json:"region"`
}

type organizer struct {
	Name string `json:"name"`
}
