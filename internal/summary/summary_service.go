package summary

import (
	"context"
	"database/sql"
	"time"

	"github.com/tanish1120/hrms-lite-backend/internal/shared/apperror"
	"github.com/tanish1120/hrms-lite-backend/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Service interface {
	GetSummary(ctx context.Context, query SummaryQuery) (SummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("summary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("summary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetSummary(ctx context.Context, query SummaryQuery) (SummaryResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	dr, err := parseDateRange(query)
	if err != nil {
		return SummaryResponse{}, err
	}

	// One read-only transaction so the totals and the breakdown agree.
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		s.logger.Error("summary begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SummaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	totals, err := qtx.CountAttendance(ctx, dr)
	if err != nil {
		s.logger.Error("summary count attendance failed", zap.String("request_id", rid), zap.Error(err))
		return SummaryResponse{}, err
	}

	totalEmployees, err := qtx.CountEmployees(ctx)
	if err != nil {
		s.logger.Error("summary count employees failed", zap.String("request_id", rid), zap.Error(err))
		return SummaryResponse{}, err
	}

	perEmployee, err := qtx.CountPerEmployee(ctx, dr)
	if err != nil {
		s.logger.Error("summary per employee failed", zap.String("request_id", rid), zap.Error(err))
		return SummaryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SummaryResponse{}, err
	}

	resp := SummaryResponse{
		TotalEmployees: totalEmployees,
		TotalRecords:   totals.TotalRecords,
		TotalPresent:   totals.TotalPresent,
		TotalAbsent:    totals.TotalAbsent,
		PerEmployee:    make([]EmployeeSummaryResponse, len(perEmployee)),
	}
	for i, row := range perEmployee {
		resp.PerEmployee[i] = EmployeeSummaryResponse(row)
	}

	s.logger.Debug("summary computed",
		zap.String("request_id", rid),
		zap.Int64("total_records", resp.TotalRecords),
		zap.Int("employees", len(resp.PerEmployee)),
	)
	return resp, nil
}

func parseDateRange(query SummaryQuery) (DateRange, error) {
	var dr DateRange
	if query.StartDate != "" {
		start, err := time.Parse(dateLayout, query.StartDate)
		if err != nil {
			return DateRange{}, apperror.InvalidField("Start Date")
		}
		dr.Start = &start
	}
	if query.EndDate != "" {
		end, err := time.Parse(dateLayout, query.EndDate)
		if err != nil {
			return DateRange{}, apperror.InvalidField("End Date")
		}
		dr.End = &end
	}
	if dr.Start != nil && dr.End != nil && dr.Start.After(*dr.End) {
		return DateRange{}, apperror.ErrInvalidDateRange
	}
	return dr, nil
}
