package model

import "github.com/google/uuid"

// Line kinds for BillingLine.Kind.
const (
	LineKindBilling = "billing"
	LineKindOrder   = "order"
)

// BillingLine is one denormalized dependent item joined to its diagnosis,
// used for Parquet export and the reporting table.
type BillingLine struct {
	ExportBatchID  string `parquet:"export_batch_id"`
	CaseID         string `parquet:"case_id"`
	Kind           string `parquet:"kind"`
	DiagnosisCode  string `parquet:"diagnosis_code"`
	DiagnosisLabel string `parquet:"diagnosis_label"`
	DiagnosisRank  int32  `parquet:"diagnosis_rank"`
	Primary        bool   `parquet:"primary"`
	ItemIndex      int32  `parquet:"item_index"`
	ItemCode       string `parquet:"item_code"`
	ItemDetail     string `parquet:"item_detail"`
	Units          string `parquet:"units"`
	Modifier       string `parquet:"modifier"`
}

// BillingLineColumns returns the ordered column names for COPY into chart.billing_lines.
func BillingLineColumns() []string {
	return []string{
		"export_batch_id",
		"case_id",
		"kind",
		"diagnosis_code",
		"diagnosis_label",
		"diagnosis_rank",
		"is_primary",
		"item_index",
		"item_code",
		"item_detail",
		"units",
		"modifier",
	}
}

// CopyValues returns the line values in the same order as BillingLineColumns(),
// suitable for pgx CopyFromSource.
func (l *BillingLine) CopyValues() []any {
	batch, err := uuid.Parse(l.ExportBatchID)
	var batchVal any = l.ExportBatchID
	if err == nil {
		batchVal = batch
	}
	return []any{
		batchVal,
		l.CaseID,
		l.Kind,
		nilIfEmpty(l.DiagnosisCode),
		l.DiagnosisLabel,
		l.DiagnosisRank,
		l.Primary,
		l.ItemIndex,
		l.ItemCode,
		l.ItemDetail,
		l.Units,
		l.Modifier,
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
