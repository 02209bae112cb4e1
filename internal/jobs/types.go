package jobs

// Catalogs are the company slugs the job service can search, grouped by job
// board. Greenhouse is catalog A and Lever catalog B.
type Catalogs struct {
	Greenhouse []string `json:"greenhouse"`
	Lever      []string `json:"lever"`
}

// Profile is the record submitted for analysis. Nil optionals are encoded as
// JSON null, which the service treats as absent.
type Profile struct {
	Role              string   `json:"role"`
	Company           string   `json:"company"`
	YearsOfExperience int      `json:"years_of_experience"`
	Skills            []string `json:"skills"`
	ExpectedSalary    *int     `json:"expected_salary"`
	Location          *string  `json:"location"`
	TargetCompanies   []string `json:"target_companies"`
}

// ExpandedProfile is the service's enriched view of the submitted profile.
type ExpandedProfile struct {
	OriginalRole        string   `json:"original_role"`
	OriginalCompany     string   `json:"original_company"`
	YearsOfExperience   int      `json:"years_of_experience"`
	InferredSkills      []string `json:"inferred_skills"`
	SeniorityLevel      string   `json:"seniority_level"`
	TargetTitles        []string `json:"target_titles"`
	CompanyTier         string   `json:"company_tier"`
	ExpectedSalaryRange string   `json:"expected_salary_range"`
}

// Job is a single listing pulled from a job board.
type Job struct {
	ID                    string  `json:"id"`
	Title                 string  `json:"title"`
	Company               string  `json:"company"`
	Location              *string `json:"location"`
	URL                   string  `json:"url"`
	Source                string  `json:"source"`
	PostedDate            *string `json:"posted_date"`
	Description           *string `json:"description"`
	SalaryMin             *int    `json:"salary_min"`
	SalaryMax             *int    `json:"salary_max"`
	RequiredExperienceMin *int    `json:"required_experience_min"`
	RequiredExperienceMax *int    `json:"required_experience_max"`
}

// RankedJob is a Job scored against the profile.
type RankedJob struct {
	Job
	MatchScore   int      `json:"match_score"`
	Insight      string   `json:"insight"`
	MatchReasons []string `json:"match_reasons"`
}

// MatchResult is the analysis response.
type MatchResult struct {
	Profile           ExpandedProfile `json:"profile"`
	Jobs              []RankedJob     `json:"jobs"`
	TotalJobs         int             `json:"total_jobs"`
	CompaniesSearched []string        `json:"companies_searched"`
}
