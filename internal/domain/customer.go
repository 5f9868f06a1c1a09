package domain

import "strings"

type IdentificationDocument struct {
	Name string `json:"name"`
	// URL holds the uploaded file as a data: URL.
	URL string `json:"url"`
}

type Customer struct {
	ID         string                 `json:"id"`
	FirstName  string                 `json:"firstName"`
	LastName   string                 `json:"lastName"`
	Email      string                 `json:"email"`
	Phone      string                 `json:"phone"`
	IDNumber   string                 `json:"idNumber"`
	IDDocument IdentificationDocument `json:"idDocument"`
}

func (c Customer) EntityID() string { return c.ID }

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// HasIdentification reports whether both an ID number and a document are on file.
func (c Customer) HasIdentification() bool {
	return strings.TrimSpace(c.IDNumber) != "" && c.IDDocument.URL != ""
}
