package services

import (
	"errors"
	"strings"
	"time"
)

const MaxExportRangeDays = 366

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ExportRange is an inclusive span of calendar dates.
type ExportRange struct {
	From time.Time
	To   time.Time
}

func ParseExportRange(rawFrom string, rawTo string) (ExportRange, error) {
	from, err := ParseISODate(strings.TrimSpace(rawFrom))
	if err != nil {
		return ExportRange{}, ErrExportFromDateInvalid
	}
	to, err := ParseISODate(strings.TrimSpace(rawTo))
	if err != nil {
		return ExportRange{}, ErrExportToDateInvalid
	}
	if to.Before(from) || int(to.Sub(from).Hours()/24) >= MaxExportRangeDays {
		return ExportRange{}, ErrExportRangeInvalid
	}
	return ExportRange{From: from, To: to}, nil
}
