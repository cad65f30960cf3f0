package models

// Property is the catalog snapshot a score is computed against.
// Scoring never mutates it.
type Property struct {
	PropertyID   string   `dynamodbav:"propertyId" json:"propertyId"`
	Title        string   `dynamodbav:"title,omitempty" json:"title,omitempty"`
	Price        float64  `dynamodbav:"price" json:"price"`
	Bedrooms     int      `dynamodbav:"bedrooms" json:"bedrooms"`
	Bathrooms    int      `dynamodbav:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Address      string   `dynamodbav:"address,omitempty" json:"address,omitempty"`
	City         string   `dynamodbav:"city,omitempty" json:"city,omitempty"`
	State        string   `dynamodbav:"state,omitempty" json:"state,omitempty"`
	Neighborhood string   `dynamodbav:"neighborhood,omitempty" json:"neighborhood,omitempty"`
	Amenities    []string `dynamodbav:"amenities,omitempty" json:"amenities,omitempty"`
	PetFriendly  bool     `dynamodbav:"petFriendly,omitempty" json:"petFriendly,omitempty"`
	Furnished    bool     `dynamodbav:"furnished,omitempty" json:"furnished,omitempty"`
	Parking      bool     `dynamodbav:"parking,omitempty" json:"parking,omitempty"`
	Latitude     float64  `dynamodbav:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    float64  `dynamodbav:"longitude,omitempty" json:"longitude,omitempty"`
	CreatedAt    string   `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// PropertiesTable is the DynamoDB table name for the property catalog
const PropertiesTable = "Properties"
