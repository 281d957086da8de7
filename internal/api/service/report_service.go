package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/homeledger/homeledger/internal/domain/category"
	"github.com/homeledger/homeledger/internal/domain/expense"
	"github.com/homeledger/homeledger/internal/domain/tag"
)

// ReportServiceImpl implements the ReportService interface. Totals are
// computed store-side; this layer only resolves category and tag names.
type ReportServiceImpl struct {
	expenses   expense.Repository
	categories category.Repository
	tags       tag.Repository
	logger     *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(logger *slog.Logger, expenses expense.Repository, categories category.Repository, tags tag.Repository) ReportService {
	return &ReportServiceImpl{
		expenses:   expenses,
		categories: categories,
		tags:       tags,
		logger:     logger,
	}
}

// GetReport aggregates spend over [start, end]: the overall summary split
// by the extra flag, and totals per category, per day, and per tag.
func (s *ReportServiceImpl) GetReport(ctx context.Context, ownerID string, start, end time.Time) (*Report, error) {
	q := expense.Query{StartDate: start, EndDate: end}

	summary, err := s.expenses.Summarize(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}

	categoryTotals, err := s.expenses.TotalsByCategory(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}

	dateTotals, err := s.expenses.TotalsByDate(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}

	tagTotals, err := s.expenses.TotalsByTag(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}

	categoryNames, err := s.categoryNames(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	tagNames, err := s.tagNames(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Total:       summary.Total,
		ExtraTotal:  summary.ExtraTotal,
		NormalTotal: summary.NormalTotal,
		Categories:  make([]CategoryReportRow, 0, len(categoryTotals)),
		Days:        make([]DayReportRow, 0, len(dateTotals)),
		Tags:        make([]TagReportRow, 0, len(tagTotals)),
	}

	for _, ct := range categoryTotals {
		report.Categories = append(report.Categories, CategoryReportRow{
			CategoryID: ct.CategoryID.Hex(),
			Name:       categoryNames[ct.CategoryID.Hex()], // Empty for deleted categories
			Total:      ct.Total,
		})
	}
	for _, dt := range dateTotals {
		report.Days = append(report.Days, DayReportRow{Date: dt.Date, Total: dt.Total})
	}
	for _, tt := range tagTotals {
		report.Tags = append(report.Tags, TagReportRow{
			TagID: tt.TagID.Hex(),
			Name:  tagNames[tt.TagID.Hex()],
			Total: tt.Total,
		})
	}

	return report, nil
}

func (s *ReportServiceImpl) categoryNames(ctx context.Context, ownerID string) (map[string]string, error) {
	categories, err := s.categories.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID.Hex()] = c.Name
	}
	return names, nil
}

func (s *ReportServiceImpl) tagNames(ctx context.Context, ownerID string) (map[string]string, error) {
	tags, err := s.tags.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(tags))
	for _, t := range tags {
		names[t.ID.Hex()] = t.Name
	}
	return names, nil
}
