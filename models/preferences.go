package models

// UserPreferences captures what a user is looking for in a rental.
// It is written only through the preference update endpoint; the scoring
// subsystem treats it as read-only input.
type UserPreferences struct {
	UserID      string   `dynamodbav:"userId" json:"userId"`
	BudgetMin   float64  `dynamodbav:"budgetMin,omitempty" json:"budgetMin,omitempty"`
	BudgetMax   float64  `dynamodbav:"budgetMax,omitempty" json:"budgetMax,omitempty"`
	Bedrooms    []int    `dynamodbav:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Amenities   []string `dynamodbav:"amenities,omitempty" json:"amenities,omitempty"`
	Locations   []string `dynamodbav:"locations,omitempty" json:"locations,omitempty"`
	PetFriendly bool     `dynamodbav:"petFriendly,omitempty" json:"petFriendly,omitempty"`
	Furnished   bool     `dynamodbav:"furnished,omitempty" json:"furnished,omitempty"`
	Parking     bool     `dynamodbav:"parking,omitempty" json:"parking,omitempty"`
	UpdatedAt   string   `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PreferencesTable is the DynamoDB table name for user preferences
const PreferencesTable = "Preferences"
