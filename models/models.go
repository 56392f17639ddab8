// Package models defines the entities stored in the hosted base and their
// conversions to and from record field maps.
package models

import "github.com/rpupo63/student-showcase-backend/database"

// Publishing status of a project.
const (
	PublishingStatusPublished = "published"
	PublishingStatusHidden    = "hidden"
)

// Processing status of a contact request.
const (
	ContactStatusNew       = "new"
	ContactStatusContacted = "contacted"
	ContactStatusProcessed = "processed"
)

// User is a registered account. Password holds the bcrypt hash, never the
// clear text.
type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Password          string `json:"password,omitempty"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Phone             string `json:"phone,omitempty"`
	Address           string `json:"address,omitempty"`
	FormationInterest string `json:"formation_interest,omitempty"`
	IsAdmin           bool   `json:"is_admin"`
}

// UserFromRecord reads a user off a store record.
func UserFromRecord(record database.Record) User {
	return User{
		ID:                record.ID,
		Email:             stringField(record, "email"),
		Password:          stringField(record, "password"),
		FirstName:         stringField(record, "first_name"),
		LastName:          stringField(record, "last_name"),
		Phone:             stringField(record, "phone"),
		Address:           stringField(record, "address"),
		FormationInterest: stringField(record, "formation_interest"),
		IsAdmin:           boolField(record, "is_admin"),
	}
}

// Image is one attachment entry on a project.
type Image struct {
	URL string `json:"url"`
}

// Project is a showcased student project. Category, Technologies, Likes
// and Comments hold record ids of the linked tables.
type Project struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	CreatedBy        string   `json:"created_by"`
	Description      string   `json:"description"`
	ProjectLink      string   `json:"project_link,omitempty"`
	Category         []string `json:"category"`
	Technologies     []string `json:"technologies"`
	Image            []Image  `json:"image,omitempty"`
	Likes            []string `json:"likes"`
	PublishingStatus string   `json:"publishing_status"`
	Comments         []string `json:"comments,omitempty"`
}

// ProjectFromRecord reads a project off a store record.
func ProjectFromRecord(record database.Record) Project {
	return Project{
		ID:               record.ID,
		Name:             stringField(record, "name"),
		CreatedBy:        stringField(record, "created_by"),
		Description:      stringField(record, "description"),
		ProjectLink:      stringField(record, "project_link"),
		Category:         database.StringsFromField(record, "category"),
		Technologies:     database.StringsFromField(record, "technologies"),
		Image:            imagesField(record, "image"),
		Likes:            database.StringsFromField(record, "likes"),
		PublishingStatus: stringField(record, "publishing_status"),
		Comments:         database.StringsFromField(record, "comments"),
	}
}

// Category groups projects.
type Category struct {
	ID           string `json:"id"`
	CategoryName string `json:"category_name"`
	Description  string `json:"description"`
}

// Technology is a tool or language a project was built with.
type Technology struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Comment is a user's remark on a project. Project and User hold single
// linked record ids; CreationDate is computed by the store.
type Comment struct {
	ID           string   `json:"id"`
	Comment      string   `json:"comment"`
	Project      []string `json:"project"`
	User         []string `json:"user"`
	CreationDate string   `json:"creation_date,omitempty"`
}

// Contact is an inbound contact request from the public form.
type Contact struct {
	ID                string `json:"id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	Address           string `json:"address,omitempty"`
	FormationInterest string `json:"formation_interest,omitempty"`
	Message           string `json:"message,omitempty"`
	Status            string `json:"status"`
}

func stringField(record database.Record, field string) string {
	if value, ok := record.Fields[field].(string); ok {
		return value
	}
	return ""
}

func boolField(record database.Record, field string) bool {
	if value, ok := record.Fields[field].(bool); ok {
		return value
	}
	return false
}

func imagesField(record database.Record, field string) []Image {
	raw, ok := record.Fields[field].([]any)
	if !ok {
		return nil
	}
	images := make([]Image, 0, len(raw))
	for _, item := range raw {
		if entry, ok := item.(map[string]any); ok {
			if u, ok := entry["url"].(string); ok {
				images = append(images, Image{URL: u})
			}
		}
	}
	return images
}
