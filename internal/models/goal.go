package models

import "fmt"

// Goal is a named goal for a person. (Person, Name) is the identifying key:
// an edit replaces the description of the first matching record and never
// creates a duplicate key.
type Goal struct {
	Person      string `json:"person"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (g *Goal) Validate() error {
	if g.Person == "" {
		return fmt.Errorf("goal person cannot be empty")
	}
	if g.Name == "" {
		return fmt.Errorf("goal name cannot be empty")
	}
	return nil
}
