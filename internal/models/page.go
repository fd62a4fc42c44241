package models

// PageQuery describes a request for the create-point page.
type PageQuery struct {
	StateID int          // StateID preselects a state and loads its cities.
	Hint    PositionHint // Hint is used to resolve the initial position.
}

// Page is the data the create-point form is rendered from.
type Page struct {
	Items    []Item
	States   []State
	Cities   []City
	Position Coordinates
}

// DeliveryStatus tells how a submission left the service.
type DeliveryStatus string

const (
	// DeliveryDelivered means the points API accepted the submission.
	DeliveryDelivered DeliveryStatus = "delivered"
	// DeliveryQueued means the submission was stored for redelivery.
	DeliveryQueued DeliveryStatus = "queued"
)

// Delivery is the outcome of a submission.
type Delivery struct {
	Status   DeliveryStatus
	PointID  int   // PointID is set when the points API reported one.
	OutboxID int64 // OutboxID is set when the submission was queued.
}

// OutboxEntry is a stored submission waiting for redelivery.
type OutboxEntry struct {
	ID         int64
	Submission Submission
	Attempts   int
}
