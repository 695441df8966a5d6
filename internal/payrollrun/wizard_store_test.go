package payrollrun_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-payroll/internal/payrollrun"
	payrollrunerrors "go-payroll/internal/payrollrun/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestWizardStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	rdb, redisMock := redismock.NewClientMock()
	store := payrollrun.NewWizardStore(rdb)

	w := payrollrun.NewWizard(testCompanyID.String())
	assert.NoError(t, w.SetPeriod(7, 2026, time.Date(2026, 7, 25, 0, 0, 0, 0, time.UTC)))

	payload, err := json.Marshal(w)
	assert.NoError(t, err)
	key := "payroll:wizard:" + w.CompanyID + ":" + w.ID

	redisMock.ExpectSet(key, payload, 24*time.Hour).SetVal("OK")
	assert.NoError(t, store.Save(ctx, w))

	redisMock.ExpectGet(key).SetVal(string(payload))
	loaded, err := store.Get(ctx, w.CompanyID, w.ID)
	assert.NoError(t, err)
	assert.Equal(t, w.ID, loaded.ID)
	assert.Equal(t, payrollrun.StepSelectingPeriod, loaded.Step)
	assert.Equal(t, 7, loaded.Month)
	assert.Equal(t, w.Revision, loaded.Revision)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestWizardStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	rdb, redisMock := redismock.NewClientMock()
	store := payrollrun.NewWizardStore(rdb)

	key := "payroll:wizard:" + testCompanyID.String() + ":nope"
	redisMock.ExpectGet(key).RedisNil()

	_, err := store.Get(ctx, testCompanyID.String(), "nope")

	assert.ErrorIs(t, err, payrollrunerrors.ErrWizardNotFound)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestWizardStore_Delete(t *testing.T) {
	ctx := context.Background()
	rdb, redisMock := redismock.NewClientMock()
	store := payrollrun.NewWizardStore(rdb)

	key := "payroll:wizard:" + testCompanyID.String() + ":w1"
	redisMock.ExpectDel(key).SetVal(1)

	assert.NoError(t, store.Delete(ctx, testCompanyID.String(), "w1"))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
