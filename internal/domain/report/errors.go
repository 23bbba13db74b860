package report

import "errors"

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidType    = errors.New("invalid report type")
	ErrInvalidPeriod  = errors.New("report period end precedes start")
)
