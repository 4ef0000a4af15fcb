package model

import "time"

// SyncSummary captures what a normalization pass did (or would do) to a record.
type SyncSummary struct {
	FilePath            string
	CaseID              string
	FingerprintBefore   string
	FingerprintAfter    string
	Diagnoses           int
	PrimaryCode         string
	PrimaryFlagsFixed   bool
	BillingRelinked     int
	OrdersRelinked      int
	BillingMaterialized int
	OrdersMaterialized  int
	LegacyKeysMigrated  int
	ActiveRegions       []string
	SuspectDuplicates   []string
	GroupsByDiagnosis   map[string]int
	Changed             bool
	Duration            time.Duration
}

// PublishSummary reports one run of the publish pipeline.
type PublishSummary struct {
	Sync              *SyncSummary
	FilePath          string
	FileSHA256        string
	CaseID            string
	ExportBatchID     string
	WroteFile         bool
	AlreadyStored     bool
	Inserted          bool
	LinesStaged       int64
	DurationNormalize time.Duration
	DurationPersist   time.Duration
	DurationStage     time.Duration
	DurationTotal     time.Duration
}
