// file: service/report_service.go

package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"card-bank-api/model"
	"card-bank-api/repository"
)

// ErrInvalidDateFilter is returned when a fee-report date filter is neither
// RFC 3339 nor a plain YYYY-MM-DD date.
var ErrInvalidDateFilter = errors.New("date filter must be RFC 3339 or YYYY-MM-DD")

// ErrInvalidTransactionID is returned when the transaction_id filter is not
// a positive integer.
var ErrInvalidTransactionID = errors.New("transaction_id filter must be a positive integer")

const historyLimit = 10

// ReportService covers the read-only query surface: per-card history and
// fee-income aggregation. No locks are taken; reads run at the store's
// default isolation.
type ReportService struct {
	transactionRepo repository.ITransactionRepository
}

func NewReportService(transactionRepo repository.ITransactionRepository) *ReportService {
	return &ReportService{transactionRepo: transactionRepo}
}

// History returns up to ten most recent transactions where the card is the
// source, newest first.
func (s *ReportService) History(ctx context.Context, cardNumber string) ([]*model.TransactionResult, error) {
	transactions, err := s.transactionRepo.GetHistoryByCardNumber(cardNumber, historyLimit)
	if err != nil {
		return nil, err
	}

	results := make([]*model.TransactionResult, 0, len(transactions))
	for _, t := range transactions {
		results = append(results, &model.TransactionResult{
			RefNumber: t.RefNumber,
			Amount:    t.Amount,
			Fee:       t.FeeAmount,
			Status:    t.Status,
			Date:      t.CreatedAt,
			Type:      t.Type,
		})
	}
	return results, nil
}

// FeeReport sums fee income over optional date range and transaction id
// filters. Date filters accept RFC 3339 timestamps or plain dates; a plain
// end date is inclusive through the end of that day.
func (s *ReportService) FeeReport(ctx context.Context, startDate, endDate, transactionID string) (*model.FeeReport, error) {
	var start, end *time.Time
	var txID *int

	if startDate != "" {
		t, _, err := parseDateFilter(startDate)
		if err != nil {
			return nil, err
		}
		start = &t
	}
	if endDate != "" {
		t, dateOnly, err := parseDateFilter(endDate)
		if err != nil {
			return nil, err
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		end = &t
	}
	if transactionID != "" {
		id, err := strconv.Atoi(transactionID)
		if err != nil || id <= 0 {
			return nil, ErrInvalidTransactionID
		}
		txID = &id
	}

	total, err := s.transactionRepo.GetFeeTotal(start, end, txID)
	if err != nil {
		return nil, err
	}

	return &model.FeeReport{
		TotalFeeIncome: total,
		StartDate:      startDate,
		EndDate:        endDate,
		TransactionID:  transactionID,
	}, nil
}

// parseDateFilter accepts RFC 3339 or YYYY-MM-DD and reports whether the
// input carried only a date.
func parseDateFilter(value string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, value, time.Local); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, ErrInvalidDateFilter
}
