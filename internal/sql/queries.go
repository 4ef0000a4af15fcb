package sql

import (
	"embed"
)

// Migrations holds the schema DDL applied by db.ApplyMigrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/upsert_case.sql
var UpsertCase string

//go:embed queries/get_case.sql
var GetCase string

//go:embed queries/case_fingerprint.sql
var CaseFingerprint string

//go:embed queries/list_cases.sql
var ListCases string

//go:embed queries/delete_billing_lines.sql
var DeleteBillingLines string

//go:embed queries/count_billing_lines.sql
var CountBillingLines string

//go:embed queries/analyze_billing_lines.sql
var AnalyzeBillingLines string
