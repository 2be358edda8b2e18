package model

// Character: персонаж игрока в том виде, в котором его видит боевой движок.
type Character struct {
	ID         string `yaml:"id" json:"id"`
	UserID     string `yaml:"user_id" json:"userId,omitempty"`
	Name       string `yaml:"name" json:"name"`
	Level      int    `yaml:"level" json:"level"`
	Experience int64  `yaml:"experience" json:"experience"`
	Gold       int64  `yaml:"gold" json:"gold"`
}

// DefaultAttackType is shown when no equipped weapon names its own verb.
const DefaultAttackType = "smashes"
