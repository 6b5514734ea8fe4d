package amqp

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() payroll.PayrollCreatedEvent {
	return payroll.PayrollCreatedEvent{
		RecordID:   "0199a0f2-0000-7000-8000-000000000001",
		CompanyID:  "C1",
		EmployeeID: "E1",
		Periode:    "2025-11",
		GajiBersih: decimal.RequireFromString("5225000"),
	}
}

func TestNewPayrollCreatedMessage(t *testing.T) {
	msg := NewPayrollCreatedMessage(testEvent())

	assert.Equal(t, "E1", msg.EmployeeID)
	assert.Equal(t, "2025-11", msg.Periode)
	assert.WithinDuration(t, time.Now(), msg.Timestamp, time.Second)
}

func TestPayrollCreatedMessage_JSON(t *testing.T) {
	msg := NewPayrollCreatedMessage(testEvent())

	body, err := msg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"gaji_bersih":"5225000"`)
	assert.Contains(t, string(body), `"record_id":"0199a0f2-0000-7000-8000-000000000001"`)

	parsed, err := PayrollCreatedMessageFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, msg.RecordID, parsed.RecordID)
	assert.True(t, msg.GajiBersih.Equal(parsed.GajiBersih))
	assert.True(t, msg.Timestamp.Equal(parsed.Timestamp))
}

func TestPayrollCreatedMessage_InvalidJSON(t *testing.T) {
	_, err := PayrollCreatedMessageFromJSON([]byte(`{"record_id": 12}`))
	assert.Error(t, err)
}

func TestClient_PublishWithoutChannel(t *testing.T) {
	client := &Client{exchangeName: "hris.payroll", queueName: "payroll.created"}

	err := client.PublishPayrollCreated(context.Background(), testEvent())
	assert.ErrorIs(t, err, ErrClientClosed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = client.PublishPayrollCreated(ctx, testEvent())
	assert.ErrorIs(t, err, context.Canceled)

	assert.NoError(t, client.Close())
}

func TestNoopPublisher(t *testing.T) {
	var p payroll.EventPublisher = NoopPublisher{}
	assert.NoError(t, p.PublishPayrollCreated(context.Background(), testEvent()))
}
