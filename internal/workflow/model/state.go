package model

// RunState stores per-run state for the Eino graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex/atomic is required as long as you never touch it outside handlers.
//   - One RunState exists per graph invocation; nothing outlives the run except
//     the HTML report on disk and the optional ledger record.
type RunState struct {
	RunID        string
	RawInput     string // caller supplied, immutable after the extractor seeds it
	RunTimestamp string // set once at run start
	CurrentDate  string

	Fields       ExtractedFields
	DraftedEmail string      // overwritten on every revise cycle
	Evaluation   *Evaluation // set by the review parser post-handler

	SendStatus    string
	SummaryText   string
	ReportPath    string
	RevisionCount int

	// Accumulated total LLM cost (USD) across model invocations for this run
	TotalCostUSD float64
}

// RunInput is the caller-facing input for one pipeline run.
type RunInput struct {
	RunID    string `json:"run_id"`
	RawInput string `json:"raw_input"`
}

// RunResult is the final snapshot the graph emits when a run reaches the
// terminal stages. It echoes the immutable inputs so callers can verify the
// run never altered them.
type RunResult struct {
	RunID         string          `json:"run_id"`
	RawInput      string          `json:"raw_input"`
	RunTimestamp  string          `json:"run_timestamp"`
	Fields        ExtractedFields `json:"fields"`
	DraftedEmail  string          `json:"drafted_email"`
	Evaluation    Evaluation      `json:"evaluation"`
	SendStatus    string          `json:"send_status"`
	SummaryText   string          `json:"summary_text"`
	ReportPath    string          `json:"report_path"`
	RevisionCount int             `json:"revision_count"`
	TotalCostUSD  float64         `json:"total_cost_usd"`
}

// SendStatusSimulated marks a run whose delivery was simulated rather than
// transmitted. This is intentional behaviour, not a stub awaiting transport.
const SendStatusSimulated = "completed (simulated)"
