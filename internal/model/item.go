// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// Item is a single catalog entry presented to the user during comparisons.
// Items carry no identifier of their own; an item is identified by its
// position in the catalog, which is fixed for the lifetime of a session.
type Item struct {
	Title       string `json:"title"       yaml:"title"       validate:"required"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image"       yaml:"image"`
}

// Validate ensures the Item has valid data.
func (i *Item) Validate() error {
	if i.Title == "" {
		return fmt.Errorf("item title is required")
	}
	return nil
}

// Pair identifies one required comparison between two distinct catalog
// indices, always ordered I < J.
type Pair struct {
	I int
	J int
}

// Contains reports whether index is one of the pair's two members.
func (p Pair) Contains(index int) bool {
	return index == p.I || index == p.J
}

// String formats the pair for logs and error messages.
func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.I, p.J)
}
