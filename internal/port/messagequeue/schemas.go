package messagequeue

// ReservationEventPayload is the schema for reservation lifecycle messages.
// Consumers treat the IDs as the source of truth and re-load the entities;
// date and time ride along for log context only.
type ReservationEventPayload struct {
	ReservationID string `json:"reservation_id"`
	RestaurantID  string `json:"restaurant_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
