package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	formatDomain "fleetcodes/internal/domain/codeformat"
)

func TestOpenGormWithDialector_PingsOnOpen(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()
	mock.ExpectPing()

	gdb, err := OpenGormWithDialector(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if gdb == nil {
		t.Fatal("nil db")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTranslateError_SurfacesDuplicates(t *testing.T) {
	gdb, err := OpenGormWithDialector(sqlite.Open("file:translate_error_test?mode=memory&cache=shared"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(gdb, &formatDomain.CodeFormat{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tid := uint64(1)
	if err := gdb.Create(formatDomain.NewDefault(&tid, formatDomain.TypeVehicle)).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	err = gdb.Create(formatDomain.NewDefault(&tid, formatDomain.TypeVehicle)).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("err = %v, want gorm.ErrDuplicatedKey", err)
	}
}
