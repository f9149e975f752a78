package render

import (
	"fmt"
	"strings"

	"cardrender/internal/pkg/errors"
)

// DefaultCompositionID names the ID-card composition on the render service.
const DefaultCompositionID = "IDCard"

// CardProps are the employee-ID-card fields to render.
type CardProps struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	EmployeeID string `json:"employee_id"`
	PhotoURL   string `json:"photo_url,omitempty"`
}

// Validate checks the required fields.
func (p CardProps) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.ValidationField("props.name", "name is required")
	}
	if strings.TrimSpace(p.Position) == "" {
		return errors.ValidationField("props.position", "position is required")
	}
	if strings.TrimSpace(p.Department) == "" {
		return errors.ValidationField("props.department", "department is required")
	}
	if strings.TrimSpace(p.EmployeeID) == "" {
		return errors.ValidationField("props.employee_id", "employee id is required")
	}
	return nil
}

// Title is the human label for the cached video entry.
func (p CardProps) Title() string {
	return fmt.Sprintf("ID Card - %s", p.Name)
}

// Map flattens the props for the wire contract.
func (p CardProps) Map() map[string]string {
	m := map[string]string{
		"name":        p.Name,
		"position":    p.Position,
		"department":  p.Department,
		"employee_id": p.EmployeeID,
	}
	if p.PhotoURL != "" {
		m["photo_url"] = p.PhotoURL
	}
	return m
}
