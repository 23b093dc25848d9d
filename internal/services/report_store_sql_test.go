package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"github.com/google/uuid"
	"github.com/jknair0/beforeeach"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	mockConn  *sql.DB
	mock      sqlmock.Sqlmock
	mockStore *ReportStore
)

func setUp() {
	var err error
	mockConn, mock, err = sqlmock.New()
	if err != nil {
		panic(err)
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockConn}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}
	mockStore = NewReportStore(db)
}

func tearDown() {
	mockConn.Close()
}

var it = beforeeach.Create(setUp, tearDown)

const guardedUpdate = `UPDATE "reports" SET .*"status".* WHERE id = \$\d AND status = \$\d`

func TestCompareAndSetStatusIsGuarded(t *testing.T) {
	it(func() {
		testCases := []struct {
			name         string
			rowsAffected int64
			execErr      error

			expectedSwap  bool
			errorExpected bool
		}{
			{name: "Swapped", rowsAffected: 1, expectedSwap: true},
			{name: "Lost race", rowsAffected: 0, expectedSwap: false},
			{name: "Exec error", execErr: fmt.Errorf("test exec error"), errorExpected: true},
		}

		for _, testCase := range testCases {
			exp := mock.ExpectExec(guardedUpdate)
			if testCase.execErr != nil {
				exp.WillReturnError(testCase.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, testCase.rowsAffected))
			}

			swapped, err := mockStore.CompareAndSetStatus(context.Background(), uuid.New(), models.ReportPending, models.ReportResolved)
			if testCase.errorExpected != (err != nil) {
				t.Errorf("%s, CompareAndSetStatus: expected error: %v, got error: %v", testCase.name, testCase.errorExpected, err)
			}
			if swapped != testCase.expectedSwap {
				t.Errorf("%s, CompareAndSetStatus: expected swap %v, got %v", testCase.name, testCase.expectedSwap, swapped)
			}
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
	})
}
