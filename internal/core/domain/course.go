package domain

// Course is a scheduled course session. Immutable after creation.
// Date holds the session date-time formatted per TimeLayout.
type Course struct {
	ID    int    `json:"id" bson:"_id"`
	Title string `json:"title" bson:"title"`
	Date  string `json:"date" bson:"date"`
}
