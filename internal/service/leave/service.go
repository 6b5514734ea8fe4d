package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	leaveRequestRepo leave.LeaveRequestRepository
	loc              *time.Location
	now              func() time.Time
}

func NewLeaveService(leaveRequestRepo leave.LeaveRequestRepository, loc *time.Location) leave.LeaveService {
	if loc == nil {
		loc = time.UTC
	}
	return &LeaveServiceImpl{
		leaveRequestRepo: leaveRequestRepo,
		loc:              loc,
		now:              time.Now,
	}
}

func (s *LeaveServiceImpl) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if claims.EmployeeID == "" {
		return leave.LeaveRequestResponse{}, user.ErrEmployeeIDRequired
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	start, _ := time.Parse("2006-01-02", req.TanggalMulai)
	end, _ := time.Parse("2006-01-02", req.TanggalSelesai)

	created, err := s.leaveRequestRepo.Create(ctx, leave.LeaveRequest{
		ID:               id.String(),
		CompanyID:        claims.CompanyID,
		EmployeeID:       claims.EmployeeID,
		JenisPengajuan:   req.JenisPengajuan,
		Alasan:           req.Alasan,
		TanggalPengajuan: s.today(),
		TanggalMulai:     start,
		TanggalSelesai:   end,
		Status:           deduction.LeaveStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(created), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, requestID, deduction.LeaveStatusApproved, nil)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return s.decide(ctx, req.ID, deduction.LeaveStatusRejected, &req.RejectionReason)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, requestID string, status deduction.LeaveStatus, reason *string) (leave.LeaveRequestResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.leaveRequestRepo.GetByID(ctx, requestID, claims.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !request.IsPending() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	if claims.EmployeeID != "" && request.EmployeeID == claims.EmployeeID {
		return leave.LeaveRequestResponse{}, leave.ErrCannotApproveOwnRequest
	}

	decidedAt := s.now()
	decidedBy := claims.UserID
	request.Status = status
	request.ApprovedBy = &decidedBy
	request.ApprovedAt = &decidedAt
	request.RejectionReason = reason

	updated, err := s.leaveRequestRepo.UpdateStatus(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(updated), nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.leaveRequestRepo.GetByID(ctx, requestID, claims.CompanyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// Someone else's request is reported as missing to employees
	if !user.HasPermission(claims.Role, user.PermissionLeaveViewAll) && request.EmployeeID != claims.EmployeeID {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	return leave.NewLeaveRequestResponse(request), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	if !user.HasPermission(claims.Role, user.PermissionLeaveViewAll) {
		if claims.EmployeeID == "" {
			return leave.ListLeaveRequestResponse{}, user.ErrEmployeeIDRequired
		}
		filter.EmployeeID = &claims.EmployeeID
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	rows, total, err := s.leaveRequestRepo.List(ctx, claims.CompanyID, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	data := make([]leave.LeaveRequestResponse, 0, len(rows))
	for _, r := range rows {
		data = append(data, leave.NewLeaveRequestResponse(r))
	}

	return leave.ListLeaveRequestResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
