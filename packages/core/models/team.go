package models

// Competitor is one entry of the fixed catalog. Colours are passed through to
// the gameplay surface untouched.
type Competitor struct {
	Code   string `gorm:"primaryKey;size:8" json:"abbr"`
	Name   string `gorm:"size:255;not null" json:"name"`
	Color1 string `gorm:"size:32" json:"color1"`
	Color2 string `gorm:"size:32" json:"color2"`
}

func (Competitor) TableName() string {
	return "competitors"
}

// Same compares competitors by code.
func (c Competitor) Same(other Competitor) bool {
	return c.Code == other.Code
}

func cloneCompetitor(c *Competitor) *Competitor {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

type CreateCompetitorRequest struct {
	Code   string `json:"abbr" binding:"required,min=2,max=8,alphanum"`
	Name   string `json:"name" binding:"required"`
	Color1 string `json:"color1"`
	Color2 string `json:"color2"`
}
