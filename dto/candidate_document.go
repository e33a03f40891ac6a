package dto

// CandidateDocument is the JSON document the converter subprocess
// writes on success. Unknown fields are tolerated; required fields are
// checked after decoding (see converter service).
type CandidateDocument struct {
	PersonalInfo       PersonalInfo         `json:"personal_info"`
	Overview           string               `json:"overview"`
	Education          []Education          `json:"education"`
	WorkExperience     []WorkExperience     `json:"work_experience"`
	Skills             []string             `json:"skills"`
	Certifications     []Certification      `json:"certifications"`
	Languages          []Language           `json:"languages"`
	MilitaryExperience []MilitaryExperience `json:"military_experience"`
}

type PersonalInfo struct {
	FullName    string    `json:"full_name"`
	DateOfBirth CivilDate `json:"date_of_birth"`
	Nationality string    `json:"nationality"`
	Contact     Contact   `json:"contact"`
}

type Contact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Education struct {
	Degree       string     `json:"degree"`
	Institution  string     `json:"institution"`
	FieldOfStudy string     `json:"field_of_study"`
	StartDate    CivilDate  `json:"start_date"`
	EndDate      *CivilDate `json:"end_date"`
}

type WorkExperience struct {
	JobTitle  string     `json:"job_title"`
	Company   string     `json:"company"`
	StartDate CivilDate  `json:"start_date"`
	EndDate   *CivilDate `json:"end_date"`
}

type Certification struct {
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuing_organization"`
}

type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type MilitaryExperience struct {
	Rank      string     `json:"rank"`
	Branch    string     `json:"branch"`
	StartDate CivilDate  `json:"start_date"`
	EndDate   *CivilDate `json:"end_date"`
	Duties    []string   `json:"duties"`
}
