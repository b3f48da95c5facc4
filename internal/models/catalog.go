package models

import "encoding/json"

// Skill is an entry of the skills catalog
type Skill struct {
	SkillID int64  `json:"skill_id"`
	Name    string `json:"name"`
}

// UnmarshalJSON accepts both "name" and "skill_name".
func (s *Skill) UnmarshalJSON(data []byte) error {
	var raw struct {
		SkillID   int64  `json:"skill_id"`
		Name      string `json:"name"`
		SkillName string `json:"skill_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.SkillID = raw.SkillID
	s.Name = raw.Name
	if s.Name == "" {
		s.Name = raw.SkillName
	}
	return nil
}

// Company is an employer known to the backend
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Location is a selectable job location
type Location struct {
	LocationID int64  `json:"location_id"`
	Name       string `json:"name"`
}
