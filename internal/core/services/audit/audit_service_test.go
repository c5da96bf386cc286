package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

type mockAuditLogger struct {
	mock.Mock
}

func (m *mockAuditLogger) Append(entry domain.AuditEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *mockAuditLogger) Load(limit int) ([]domain.AuditEntry, error) {
	args := m.Called(limit)
	if entries := args.Get(0); entries != nil {
		return entries.([]domain.AuditEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRecordAppendsValidEntry(t *testing.T) {
	logger := new(mockAuditLogger)
	logger.On("Append", mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Actor == domain.ActorEngine &&
			e.Action == domain.ActionGeneratedAlert &&
			e.Context["alert_id"] == "a-1" &&
			!e.Timestamp.IsZero()
	})).Return(nil)

	svc := NewService(logger)
	err := svc.Record(context.Background(), domain.ActorEngine, domain.ActionGeneratedAlert, map[string]string{"alert_id": "a-1"})

	require.NoError(t, err)
	logger.AssertExpectations(t)
}

func TestRecordRejectsMissingActor(t *testing.T) {
	logger := new(mockAuditLogger)
	svc := NewService(logger)

	err := svc.Record(context.Background(), "", domain.ActionBlockIP, nil)

	assert.ErrorIs(t, err, domain.ErrMissingActor)
	logger.AssertNotCalled(t, "Append", mock.Anything)
}

func TestRecordRejectsUnknownAction(t *testing.T) {
	logger := new(mockAuditLogger)
	svc := NewService(logger)

	err := svc.Record(context.Background(), domain.ActorAutomation, domain.AuditAction("format_disk"), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidAction)
	logger.AssertNotCalled(t, "Append", mock.Anything)
}

func TestEntriesDelegatesToLogger(t *testing.T) {
	logger := new(mockAuditLogger)
	expected := []domain.AuditEntry{
		{Actor: domain.ActorEngine, Action: domain.ActionGeneratedAlert, Context: map[string]string{}},
	}
	logger.On("Load", 10).Return(expected, nil)

	svc := NewService(logger)
	entries, err := svc.Entries(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, expected, entries)
	logger.AssertExpectations(t)
}
