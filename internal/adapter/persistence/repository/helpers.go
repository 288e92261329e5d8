package repository

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultQuotationsTableName    = "quotations"
	defaultOrdersTableName        = "orders"
	defaultRemissionsTableName    = "remissions"
	defaultDocumentCodesTableName = "document_codes"
	defaultSequencesTableName     = "sequences"
)

// Tables names every DynamoDB table the document store uses.
type Tables struct {
	Quotations    string
	Orders        string
	Remissions    string
	DocumentCodes string
	Sequences     string
}

func TablesFromEnv() Tables {
	return Tables{
		Quotations:    getenvDefault("QUOTATIONS_TABLE", defaultQuotationsTableName),
		Orders:        getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
		Remissions:    getenvDefault("REMISSIONS_TABLE", defaultRemissionsTableName),
		DocumentCodes: getenvDefault("DOCUMENT_CODES_TABLE", defaultDocumentCodesTableName),
		Sequences:     getenvDefault("SEQUENCES_TABLE", defaultSequencesTableName),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Calendar dates are stored without a zone and read back as UTC midnight.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return d, nil
}

// cancellationReasons returns the per-item cancellation codes of a failed
// TransactWriteItems call, or nil if err is not a transaction cancellation.
func cancellationReasons(err error) []string {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return nil
	}
	codes := make([]string, len(tce.CancellationReasons))
	for i, r := range tce.CancellationReasons {
		if r.Code != nil {
			codes[i] = *r.Code
		}
	}
	return codes
}

const reasonConditionalCheckFailed = "ConditionalCheckFailed"
