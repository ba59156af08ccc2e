package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	EventsDbName  = "rendez"
	EventsColName = "events"
)

type Event struct {
	ID             string    `bson:"_id" json:"id"`
	Host           string    `bson:"host" json:"host" validate:"required"`
	Title          string    `bson:"title" json:"title" validate:"required,max=200"`
	Description    string    `bson:"description" json:"description"`
	Location       string    `bson:"location" json:"location"` // free text, e.g. "1600 Amphitheatre Parkway"
	AgeReq         int       `bson:"age_req" json:"age_req" validate:"min=0"`
	Capacity       int       `bson:"capacity" json:"capacity" validate:"min=0"`
	Topics         []string  `bson:"topics" json:"topics"`
	Amenities      []string  `bson:"amenities" json:"amenities"`
	Accommodations []string  `bson:"accommodations" json:"accommodations"`
	Interested     []string  `bson:"interested" json:"interested"`
	Attending      []string  `bson:"attending" json:"attending"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// Normalize replaces nil sets with empty ones so records always carry arrays.
func (e *Event) Normalize() {
	for _, s := range []*[]string{&e.Topics, &e.Amenities, &e.Accommodations, &e.Interested, &e.Attending} {
		if *s == nil {
			*s = []string{}
		}
	}
}

type EventFilter struct {
	Host string
}

func (f EventFilter) BSON() bson.M {
	filter := bson.M{}
	if f.Host != "" {
		filter["host"] = f.Host
	}
	return filter
}

// TitleRules is the validator rule set for Event.Title, shared by create and update.
const TitleRules = "required,max=200"

// Scalar fields that may be changed through a partial update, keyed by bson name.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldAgeReq      = "age_req"
	FieldCapacity    = "capacity"
)

// Fields that are never writable through a partial update.
var ForbiddenUpdateFields = map[string]bool{
	"host":           true,
	"_id":            true,
	"id":             true,
	"topics":         true,
	"amenities":      true,
	"accommodations": true,
	"interested":     true,
	"attending":      true,
	"created_at":     true,
	"updated_at":     true,
}

// TagKind names one of the event's tag sets.
type TagKind string

const (
	TagTopics         TagKind = "topics"
	TagAmenities      TagKind = "amenities"
	TagAccommodations TagKind = "accommodations"
)

func (k TagKind) Valid() bool {
	switch k {
	case TagTopics, TagAmenities, TagAccommodations:
		return true
	}
	return false
}

// Singular is used in error messages, e.g. "topic already added".
func (k TagKind) Singular() string {
	switch k {
	case TagTopics:
		return "topic"
	case TagAmenities:
		return "amenity"
	case TagAccommodations:
		return "accommodation"
	}
	return string(k)
}

func (e *Event) Tags(kind TagKind) []string {
	switch kind {
	case TagTopics:
		return e.Topics
	case TagAmenities:
		return e.Amenities
	case TagAccommodations:
		return e.Accommodations
	}
	return nil
}
