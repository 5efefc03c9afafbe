package model

import "context"

// ExtractedFields are the six values every notification email is built from.
type ExtractedFields struct {
	VehicleModel    string `json:"vehicle_model"`
	SoftwareVersion string `json:"software_version"`
	ControlBoard    string `json:"control_board"`
	ManagerName     string `json:"manager_name"`
	DistributorName string `json:"distributor_name"`
	TestResult      string `json:"test_result"`
}

// FieldExtractor turns free-text test event descriptions into structured
// fields. The orchestration core only depends on this interface, so the
// static stand-in below can be replaced by a real extractor without touching
// the graph.
type FieldExtractor interface {
	Extract(ctx context.Context, rawInput string) (ExtractedFields, error)
}

// StaticFieldExtractor returns the same configured fields for every input.
// It does not inspect rawInput at all.
type StaticFieldExtractor struct {
	fields ExtractedFields
}

func NewStaticFieldExtractor(cfg ExtractorConfig) *StaticFieldExtractor {
	return &StaticFieldExtractor{
		fields: ExtractedFields{
			VehicleModel:    cfg.VehicleModel,
			SoftwareVersion: cfg.SoftwareVersion,
			ControlBoard:    cfg.ControlBoard,
			ManagerName:     cfg.ManagerName,
			DistributorName: cfg.DistributorName,
			TestResult:      cfg.TestResult,
		},
	}
}

func (s *StaticFieldExtractor) Extract(ctx context.Context, rawInput string) (ExtractedFields, error) {
	return s.fields, nil
}

var _ FieldExtractor = (*StaticFieldExtractor)(nil)
