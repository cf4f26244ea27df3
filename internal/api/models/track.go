package models

// TrackResponse is the response for a tracking request.
type TrackResponse struct {
	GeneratedAt Timestamp   `json:"generatedAt"`
	Observer    Observer    `json:"observer"`
	Satellite   Satellite   `json:"satellite"`
	Passes      Passes      `json:"passes"`
	Crew        Crew        `json:"crew"`
	Conjunction Conjunction `json:"conjunction"`
	Warnings    []Warning   `json:"warnings,omitempty"`
}

// Warning represents a non-fatal issue in the response.
type Warning struct {
	Code     string  `json:"code"`
	Message  string  `json:"message"`
	Provider *string `json:"provider,omitempty"`
}

// Observer is the resolved observer location.
type Observer struct {
	Name     string `json:"name"`
	Position Point  `json:"position"`
}

// Satellite is the live satellite state.
type Satellite struct {
	Position      Point     `json:"position"`
	AltitudeKm    float64   `json:"altitudeKm"`
	VelocityKmh   float64   `json:"velocityKmh"`
	ObservedAt    Timestamp `json:"observedAt"`
	OverflyRegion string    `json:"overflyRegion"`
}

// Passes groups the predicted pass windows with their source.
type Passes struct {
	Source  string       `json:"source"`
	Windows []PassWindow `json:"windows"`
}

// PassWindow is one predicted visible pass.
type PassWindow struct {
	StartTime       Timestamp `json:"startTime"`
	EndTime         Timestamp `json:"endTime"`
	DurationSeconds int       `json:"durationSeconds"`
	MaxElevationDeg float64   `json:"maxElevationDeg"`
}

// Crew is the astronaut roster section.
type Crew struct {
	Count       int          `json:"count"`
	Unavailable bool         `json:"unavailable"`
	Members     []CrewMember `json:"members"`
}

// CrewMember is one person currently in space.
type CrewMember struct {
	Name       string `json:"name"`
	Craft      string `json:"craft"`
	ProfileURL string `json:"profileUrl"`
}

// Conjunction is the heuristic close-approach estimate.
type Conjunction struct {
	Probability     float64            `json:"probability"`
	RiskLevel       string             `json:"riskLevel"`
	NearestObjectKm float64            `json:"nearestObjectKm"`
	WindowDays      int                `json:"windowDays"`
	Events          []ConjunctionEvent `json:"events"`
}

// ConjunctionEvent is one synthetic close-approach event.
type ConjunctionEvent struct {
	Object         string    `json:"object"`
	MissDistanceKm float64   `json:"missDistanceKm"`
	Probability    float64   `json:"probability"`
	RiskLevel      string    `json:"riskLevel"`
	Time           Timestamp `json:"time"`
}
