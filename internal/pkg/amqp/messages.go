package amqp

import (
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// PayrollCreatedMessage is the body of a payroll.created message.
type PayrollCreatedMessage struct {
	RecordID   string          `json:"record_id"`
	CompanyID  string          `json:"company_id"`
	EmployeeID string          `json:"employee_id"`
	Periode    string          `json:"periode"`
	GajiBersih decimal.Decimal `json:"gaji_bersih"`
	Timestamp  time.Time       `json:"timestamp"`
}

func NewPayrollCreatedMessage(e payroll.PayrollCreatedEvent) *PayrollCreatedMessage {
	return &PayrollCreatedMessage{
		RecordID:   e.RecordID,
		CompanyID:  e.CompanyID,
		EmployeeID: e.EmployeeID,
		Periode:    e.Periode,
		GajiBersih: e.GajiBersih,
		Timestamp:  time.Now(),
	}
}

func (m *PayrollCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PayrollCreatedMessageFromJSON(data []byte) (*PayrollCreatedMessage, error) {
	var msg PayrollCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
