package models

import "fmt"

// Person is a tracked entity identified by a unique name. People are created
// by an explicit add and are never deleted by the bot.
type Person struct {
	Name string `json:"name"`
}

func (p *Person) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("person name cannot be empty")
	}
	return nil
}
