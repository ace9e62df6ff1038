package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/terraincognita07/cyclecal/internal/models"
)

var errBackendUnavailable = errors.New("backend unavailable")

type cycleBackendStub struct {
	records   []models.CycleRecord
	nextID    uint
	listErr   error
	createErr error
	deleteErr error
}

func newCycleBackendStub(records ...models.CycleRecord) *cycleBackendStub {
	stub := &cycleBackendStub{nextID: 1}
	for _, record := range records {
		if record.ID == 0 {
			record.ID = stub.nextID
		}
		if record.ID >= stub.nextID {
			stub.nextID = record.ID + 1
		}
		stub.records = append(stub.records, record)
	}
	return stub
}

func (stub *cycleBackendStub) ListByUser(_ context.Context, userID uint) ([]models.CycleRecord, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.CycleRecord, 0)
	for _, record := range stub.records {
		if record.UserID == userID {
			result = append(result, record)
		}
	}
	return result, nil
}

func (stub *cycleBackendStub) Create(_ context.Context, record *models.CycleRecord) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	record.ID = stub.nextID
	stub.nextID++
	stub.records = append(stub.records, *record)
	return nil
}

func (stub *cycleBackendStub) DeleteByUserAndRange(_ context.Context, userID uint, from time.Time, to time.Time) (int64, error) {
	return stub.deleteWhere(func(record models.CycleRecord) bool {
		return record.UserID == userID && !record.StartDate.Before(from) && record.StartDate.Before(to)
	})
}

func (stub *cycleBackendStub) DeleteByUserAndID(_ context.Context, userID uint, id uint) (int64, error) {
	return stub.deleteWhere(func(record models.CycleRecord) bool {
		return record.UserID == userID && record.ID == id
	})
}

func (stub *cycleBackendStub) DeleteByUser(_ context.Context, userID uint) (int64, error) {
	return stub.deleteWhere(func(record models.CycleRecord) bool {
		return record.UserID == userID
	})
}

func (stub *cycleBackendStub) deleteWhere(match func(models.CycleRecord) bool) (int64, error) {
	if stub.deleteErr != nil {
		return 0, stub.deleteErr
	}
	kept := stub.records[:0]
	var deleted int64
	for _, record := range stub.records {
		if match(record) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	stub.records = kept
	return deleted, nil
}

type partitionStoreStub struct {
	mu       sync.Mutex
	payloads map[string]string
	saves    int
	loads    int
	loadErr  error
	saveErr  error
}

func newPartitionStoreStub() *partitionStoreStub {
	return &partitionStoreStub{payloads: make(map[string]string)}
}

func (stub *partitionStoreStub) LoadPartition(_ context.Context, key string) (string, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.loads++
	if stub.loadErr != nil {
		return "", false, stub.loadErr
	}
	payload, ok := stub.payloads[key]
	return payload, ok, nil
}

func (stub *partitionStoreStub) SavePartition(_ context.Context, key string, _ uint, payload string) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.payloads[key] = payload
	stub.saves++
	return nil
}

func (stub *partitionStoreStub) DeleteByUser(_ context.Context, userID uint) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for _, category := range AllCategories() {
		delete(stub.payloads, PartitionKey(category, userID))
	}
	return nil
}

func (stub *partitionStoreStub) loadCount() int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.loads
}

func (stub *partitionStoreStub) raw(key string) string {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.payloads[key]
}

func makeCycle(userID uint, start string, periodDays int, cycleDays int) models.CycleRecord {
	return models.CycleRecord{
		UserID:             userID,
		StartDate:          mustParseDay(start),
		PeriodDurationDays: periodDays,
		CycleLengthDays:    cycleDays,
	}
}

func mustParseDay(raw string) time.Time {
	parsed, err := ParseISODate(raw)
	if err != nil {
		panic(err)
	}
	return parsed
}
