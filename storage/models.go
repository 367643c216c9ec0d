package storage

type Member struct {
	Name  string `dynamodbav:"name" json:"name"`
	Role  string `dynamodbav:"role" json:"role"`
	Email string `dynamodbav:"email" json:"email"`
}

type Team struct {
	TeamID              string   `dynamodbav:"team_id" json:"team_id"`
	TeamName            string   `dynamodbav:"team_name" json:"team_name"`
	Password            string   `dynamodbav:"password" json:"-"`
	UseCase             int      `dynamodbav:"use_case" json:"use_case"`
	UseCaseName         string   `dynamodbav:"use_case_name" json:"use_case_name"`
	SolutionDescription string   `dynamodbav:"solution_description" json:"solution_description"`
	Members             []Member `dynamodbav:"members" json:"members"`
	ServicesUsed        []string `dynamodbav:"services_used" json:"services_used"`
	CreatedAt           string   `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt           string   `dynamodbav:"updated_at" json:"updated_at"`
}

type Panelist struct {
	PanelistID string `dynamodbav:"panelist_id" json:"panelist_id"`
	Name       string `dynamodbav:"name" json:"name"`
	Password   string `dynamodbav:"password" json:"-"`
	IsAdmin    bool   `dynamodbav:"is_admin" json:"is_admin"`
	CreatedAt  string `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at" json:"updated_at"`
}

// Score is keyed by (team_id, panelist_id); a panelist re-scoring a team overwrites it.
type Score struct {
	TeamID             string `dynamodbav:"team_id" json:"team_id"`
	PanelistID         string `dynamodbav:"panelist_id" json:"panelist_id"`
	Presentation       int    `dynamodbav:"presentation" json:"presentation"`
	Innovation         int    `dynamodbav:"innovation" json:"innovation"`
	Functionality      int    `dynamodbav:"functionality" json:"functionality"`
	AWSWellArchitected int    `dynamodbav:"aws_well_architected" json:"aws_well_architected"`
	Total              int    `dynamodbav:"total" json:"total"`
	Comments           string `dynamodbav:"comments" json:"comments"`
	SubmittedAt        string `dynamodbav:"submitted_at" json:"submitted_at"`
}

type UseCase struct {
	UseCaseID      int      `dynamodbav:"use_case_id" json:"use_case_id" yaml:"use_case_id"`
	Name           string   `dynamodbav:"name" json:"name" yaml:"name"`
	Archetype      string   `dynamodbav:"archetype" json:"archetype" yaml:"archetype"`
	Quote          string   `dynamodbav:"quote" json:"quote" yaml:"quote"`
	Background     string   `dynamodbav:"background" json:"background" yaml:"background"`
	Reality        string   `dynamodbav:"reality" json:"reality" yaml:"reality"`
	Persona        string   `dynamodbav:"persona" json:"persona" yaml:"persona"`
	Tension        string   `dynamodbav:"tension" json:"tension" yaml:"tension"`
	Focus          string   `dynamodbav:"focus" json:"focus" yaml:"focus"`
	Challenges     []string `dynamodbav:"challenges" json:"challenges" yaml:"challenges"`
	Values         []string `dynamodbav:"values" json:"values" yaml:"values"`
	Closing        string   `dynamodbav:"closing" json:"closing" yaml:"closing"`
	ASCIILogo      string   `dynamodbav:"ascii_logo" json:"ascii_logo" yaml:"ascii_logo"`
	LoadingMessage string   `dynamodbav:"loading_message" json:"loading_message" yaml:"loading_message"`
	SortOrder      *int     `dynamodbav:"sort_order,omitempty" json:"sort_order,omitempty" yaml:"sort_order"`
	Active         *bool    `dynamodbav:"active,omitempty" json:"active,omitempty" yaml:"active"`
	CreatedAt      string   `dynamodbav:"created_at,omitempty" json:"created_at,omitempty" yaml:"-"`
	UpdatedAt      string   `dynamodbav:"updated_at,omitempty" json:"updated_at,omitempty" yaml:"-"`
}

// IsActive treats records without the flag as active.
func (u *UseCase) IsActive() bool {
	return u.Active == nil || *u.Active
}

// Order returns the listing position; records without one sort last.
func (u *UseCase) Order() int {
	if u.SortOrder == nil {
		return 999
	}
	return *u.SortOrder
}

const JudgingCriteriaID = "main"

// JudgingCriteria is a singleton record. Categories, RequiredTool and
// ExpectedServices are free-form documents owned by the front end.
type JudgingCriteria struct {
	CriteriaID       string `dynamodbav:"criteria_id" json:"criteria_id" yaml:"-"`
	Intro            string `dynamodbav:"intro" json:"intro" yaml:"intro"`
	Categories       any    `dynamodbav:"categories" json:"categories" yaml:"categories"`
	RequiredTool     any    `dynamodbav:"required_tool" json:"required_tool" yaml:"required_tool"`
	ExpectedServices any    `dynamodbav:"expected_services" json:"expected_services" yaml:"expected_services"`
	Closing          string `dynamodbav:"closing" json:"closing" yaml:"closing"`
	UpdatedAt        string `dynamodbav:"updated_at,omitempty" json:"updated_at,omitempty" yaml:"-"`
}
