package model

// ================ Config ================
type WorkflowConfig struct {
	// MaxRevisions bounds the revise loop. The upstream design has no natural
	// termination at temperature 0, so this must be set explicitly; there is
	// no safe default to guess.
	MaxRevisions int    `envconfig:"WORKFLOW_MAX_REVISIONS" required:"true"`
	RunTimeout   string `envconfig:"WORKFLOW_RUN_TIMEOUT" default:"2m"`
	ReportPath   string `envconfig:"REPORT_PATH" default:"email_result.html"`
}

type DraftModelConfig struct {
	Model       string  `envconfig:"DRAFT_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"DRAFT_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"DRAFT_TEMPERATURE" default:"0"`
}

type ReviewModelConfig struct {
	Model       string  `envconfig:"REVIEW_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"REVIEW_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"REVIEW_TEMPERATURE" default:"0"`
}

type NotifyPromptConfig struct {
	TeamName    string `envconfig:"PROMPT_TEAM_NAME" default:"Vehicle SW Test Team"`
	CompanyName string `envconfig:"PROMPT_COMPANY_NAME" default:"AutoTech"`
}

// ExtractorConfig supplies the constant values returned by the static field
// extractor. The extractor deliberately ignores the raw input; these stand in
// for a real extraction model until one exists.
type ExtractorConfig struct {
	VehicleModel    string `envconfig:"SAMPLE_VEHICLE_MODEL" default:"Sonata"`
	SoftwareVersion string `envconfig:"SAMPLE_SOFTWARE_VERSION" default:"v2.1.3"`
	ControlBoard    string `envconfig:"SAMPLE_CONTROL_BOARD" default:"ECU-2024"`
	ManagerName     string `envconfig:"SAMPLE_MANAGER_NAME" default:"Kim"`
	DistributorName string `envconfig:"SAMPLE_DISTRIBUTOR_NAME" default:"Park"`
	TestResult      string `envconfig:"SAMPLE_TEST_RESULT" default:"All Pass"`
}

type LedgerConfig struct {
	Enabled    bool   `envconfig:"RUN_LEDGER_ENABLED" default:"false"`
	TTL        string `envconfig:"RUN_LEDGER_TTL" default:"72h"`
	MaxEntries int    `envconfig:"RUN_LEDGER_MAX_ENTRIES" default:"100"`
}
