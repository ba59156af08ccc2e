package services

import "github.com/joshua-takyi/rendez/internal/models"

// NewFakeCollection hands the in-memory collection to the router tests in services_test.
func NewFakeCollection() models.Collection[models.Event] {
	return newFakeCollection()
}
