package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/homeledger/homeledger/internal/domain/category"
	"github.com/homeledger/homeledger/internal/domain/expense"
	"github.com/homeledger/homeledger/internal/domain/tag"
)

func TestReportServiceImpl_GetReport(t *testing.T) {
	ctx := context.Background()
	ownerID := "owner-1"
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	q := expense.Query{StartDate: start, EndDate: end}

	t.Run("ResolvesNames", func(t *testing.T) {
		mockExpenses := new(MockExpenseRepository)
		mockCategories := new(MockCategoryRepository)
		mockTags := new(MockTagRepository)
		svc := NewReportService(testLogger(), mockExpenses, mockCategories, mockTags)

		groceries := &category.Category{ID: primitive.NewObjectID(), Name: "Groceries", Kind: category.KindExpense}
		vacation := &tag.Tag{ID: primitive.NewObjectID(), Name: "vacation"}
		deletedCategoryID := primitive.NewObjectID()

		mockExpenses.On("Summarize", ctx, ownerID, q).Return(&expense.Summary{Total: 9000, ExtraTotal: 2000, NormalTotal: 7000}, nil).Once()
		mockExpenses.On("TotalsByCategory", ctx, ownerID, q).Return([]expense.CategoryTotal{
			{CategoryID: groceries.ID, Total: 6000},
			{CategoryID: deletedCategoryID, Total: 3000},
		}, nil).Once()
		mockExpenses.On("TotalsByDate", ctx, ownerID, q).Return([]expense.DateTotal{
			{Date: "2026-03-05", Total: 4000},
			{Date: "2026-03-12", Total: 5000},
		}, nil).Once()
		mockExpenses.On("TotalsByTag", ctx, ownerID, q).Return([]expense.TagTotal{
			{TagID: vacation.ID, Total: 2000},
		}, nil).Once()
		mockCategories.On("List", ctx, ownerID).Return([]*category.Category{groceries}, nil).Once()
		mockTags.On("List", ctx, ownerID).Return([]*tag.Tag{vacation}, nil).Once()

		report, err := svc.GetReport(ctx, ownerID, start, end)

		assert.NoError(t, err)
		assert.Equal(t, int64(9000), report.Total)
		assert.Equal(t, int64(2000), report.ExtraTotal)
		assert.Equal(t, int64(7000), report.NormalTotal)

		assert.Len(t, report.Categories, 2)
		assert.Equal(t, "Groceries", report.Categories[0].Name)
		// A deleted category still shows up in totals, just without a name
		assert.Equal(t, deletedCategoryID.Hex(), report.Categories[1].CategoryID)
		assert.Empty(t, report.Categories[1].Name)

		assert.Len(t, report.Days, 2)
		assert.Equal(t, "2026-03-05", report.Days[0].Date)

		assert.Len(t, report.Tags, 1)
		assert.Equal(t, "vacation", report.Tags[0].Name)
	})

	t.Run("EmptyRange", func(t *testing.T) {
		mockExpenses := new(MockExpenseRepository)
		mockCategories := new(MockCategoryRepository)
		mockTags := new(MockTagRepository)
		svc := NewReportService(testLogger(), mockExpenses, mockCategories, mockTags)

		mockExpenses.On("Summarize", ctx, ownerID, q).Return(&expense.Summary{}, nil).Once()
		mockExpenses.On("TotalsByCategory", ctx, ownerID, q).Return([]expense.CategoryTotal{}, nil).Once()
		mockExpenses.On("TotalsByDate", ctx, ownerID, q).Return([]expense.DateTotal{}, nil).Once()
		mockExpenses.On("TotalsByTag", ctx, ownerID, q).Return([]expense.TagTotal{}, nil).Once()
		mockCategories.On("List", ctx, ownerID).Return([]*category.Category{}, nil).Once()
		mockTags.On("List", ctx, ownerID).Return([]*tag.Tag{}, nil).Once()

		report, err := svc.GetReport(ctx, ownerID, start, end)

		assert.NoError(t, err)
		assert.Zero(t, report.Total)
		assert.Empty(t, report.Categories)
		assert.Empty(t, report.Days)
		assert.Empty(t, report.Tags)
	})
}
