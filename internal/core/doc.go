// Package core provides the billing analysis pipeline.
//
// The package holds all domain logic and has no transport dependencies. The
// HTTP server, the command line tool and tests all call it the same way.
//
// # Pipeline
//
// An analysis runs in three stages over the uploaded CSV exports:
//
//  1. [Normalize] decodes each upload (UTF-8, falling back to EUC-KR),
//     resolves vendor column aliases and fills defaults, producing [Record]s.
//  2. [Evaluate] runs every [Rule] in [DefaultRules] over the full record
//     set. A record can match several rules.
//  3. [Aggregate] sums costs and savings and groups them by cloud and by
//     category.
//
// [Analyze] chains the three stages:
//
//	analysis, err := core.Analyze([]core.File{{Name: "aws_bill.csv", Data: data}})
//
// # Column Resolution
//
// Header names are matched case-insensitively after trimming. Cost falls
// back through a list of vendor names (lineItem/UnblendedCost, PreTaxCost,
// ...) and is the only required column. Everything else has a default:
//
//   - cloud: inferred from the file name
//   - service: "Unknown"
//   - category: inferred from the service name
//   - days: 7, storage_idle_days: 0
//   - storage_class: STANDARD, discount_type: OnDemand
//
// A missing cpu_avg column leaves [Record.CPUAvg] nil, which disables the
// downsizing rule for that table.
//
// # Error Handling
//
// Errors wrap the sentinels in errors.go; use [IsClientError] to tell bad
// input from server faults. [MapError] turns any error into a [UserMessage]
// with a support code:
//
//   - FILE001-FILE005: upload and decoding errors
//   - COL001: missing cost column
//   - RPT001-RPT004: report errors
//   - UPL002-UPL005: capacity and cancellation
//   - RATE001: request rate limiting
//
// # Concurrency
//
// All pipeline functions are pure and safe for concurrent use. [AnalysisLimiter]
// bounds how many analyses or report renders run at once.
package core
