package models

// Summary holds aggregate statistics over a full scan. It is built once by
// the aggregator and consumed by the report writers.
type Summary struct {
	TotalRecords    int            `json:"totalRecords"`
	WithSalary      int            `json:"withSalary"`
	TechCounts      map[string]int `json:"techCounts"`
	TopTechnologies []TechCount    `json:"topTechnologies"`
	Experience      *Stats         `json:"experience,omitempty"`
	Salary          *Stats         `json:"salary,omitempty"`
	Fields          []FieldSummary `json:"fields,omitempty"`
}

// TechCount is one entry of a technology rating.
type TechCount struct {
	Technology string `json:"technology"`
	Count      int    `json:"count"`
}

// Stats describes the distribution of present values only; records with the
// field absent are excluded, not counted as zero.
type Stats struct {
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// FieldSummary holds per-field-type salary coverage and the field's top
// technologies.
type FieldSummary struct {
	FieldType       string      `json:"fieldType"`
	Total           int         `json:"total"`
	WithSalary      int         `json:"withSalary"`
	WithoutSalary   int         `json:"withoutSalary"`
	CoveragePct     float64     `json:"coveragePct"`
	TopTechnologies []TechCount `json:"topTechnologies,omitempty"`
}
