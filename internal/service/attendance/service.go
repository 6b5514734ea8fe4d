package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/deduction"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/utils"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	office         config.OfficeConfig
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, office config.OfficeConfig, loc *time.Location) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		office:         office,
		loc:            loc,
		now:            time.Now,
	}
}

// today returns the company-local calendar day at UTC midnight together with
// the local wall-clock time.
func (s *AttendanceServiceImpl) today() (time.Time, string) {
	nowLocal := s.now().In(s.loc)
	day := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)
	return day, nowLocal.Format("15:04")
}

func employeeClaims(ctx context.Context) (jwt.Claims, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return jwt.Claims{}, err
	}
	if claims.EmployeeID == "" {
		return jwt.Claims{}, user.ErrEmployeeIDRequired
	}
	return claims, nil
}

func (s *AttendanceServiceImpl) checkGeofence(lat, lng float64) error {
	if !s.office.GeofenceEnabled() {
		return nil
	}
	office := utils.Coordinate{Latitude: s.office.Latitude, Longitude: s.office.Longitude}
	distance, ok := utils.WithinRadius(office, utils.Coordinate{Latitude: lat, Longitude: lng}, s.office.RadiusMeters)
	if !ok {
		return fmt.Errorf("%w: %.0fm from office, allowed %.0fm", attendance.ErrOutsideAllowedRadius, distance, s.office.RadiusMeters)
	}
	return nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	claims, err := employeeClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day, clock := s.today()

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, claims.EmployeeID, day, claims.CompanyID)
	switch {
	case err == nil:
		if existing.JamMasuk != nil {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		// A manager pre-marked the day; arriving turns it into a normal hadir day
		existing.Status = deduction.AttendanceStatusHadir
		existing.JamMasuk = &clock
		existing.ClockInLatitude = &req.Latitude
		existing.ClockInLongitude = &req.Longitude
		updated, err := s.attendanceRepo.Update(ctx, existing)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.NewAttendanceResponse(updated), nil
	case !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		ID:               id.String(),
		CompanyID:        claims.CompanyID,
		EmployeeID:       claims.EmployeeID,
		Tanggal:          day,
		Status:           deduction.AttendanceStatusHadir,
		JamMasuk:         &clock,
		ClockInLatitude:  &req.Latitude,
		ClockInLongitude: &req.Longitude,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	claims, err := employeeClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day, clock := s.today()

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, claims.EmployeeID, day, claims.CompanyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing.JamMasuk == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.JamKeluar != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	existing.JamKeluar = &clock
	existing.ClockOutLatitude = &req.Latitude
	existing.ClockOutLongitude = &req.Longitude

	updated, err := s.attendanceRepo.Update(ctx, existing)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(updated), nil
}

// MarkStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkStatus(ctx context.Context, req attendance.MarkStatusRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	tanggal, _ := time.Parse("2006-01-02", req.Tanggal)
	saved, err := s.attendanceRepo.UpsertStatus(ctx, attendance.Attendance{
		ID:         id.String(),
		CompanyID:  claims.CompanyID,
		EmployeeID: req.EmployeeID,
		Tanggal:    tanggal,
		Status:     deduction.ParseAttendanceStatus(req.Status),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(saved), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// Employees are pinned to their own rows
	if !user.HasPermission(claims.Role, user.PermissionAttendanceViewAll) {
		if claims.EmployeeID == "" {
			return attendance.ListAttendanceResponse{}, user.ErrEmployeeIDRequired
		}
		filter.EmployeeID = &claims.EmployeeID
	}

	var period deduction.Period
	if filter.Periode == "" {
		day, _ := s.today()
		period = deduction.Period{Year: day.Year(), Month: day.Month()}
	} else {
		period, _ = deduction.ParsePeriod(filter.Periode)
	}

	rows, err := s.attendanceRepo.ListByDateRange(ctx, claims.CompanyID, filter.EmployeeID, period.FirstDay().Time(), period.LastDay().Time())
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	data := make([]attendance.AttendanceResponse, 0, len(rows))
	for _, a := range rows {
		data = append(data, attendance.NewAttendanceResponse(a))
	}

	return attendance.ListAttendanceResponse{
		Periode:    period.String(),
		Data:       data,
		TotalCount: int64(len(data)),
	}, nil
}

// AutoCloseStale implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AutoCloseStale(ctx context.Context) (int, error) {
	day, _ := s.today()

	open, err := s.attendanceRepo.ListOpenBefore(ctx, day)
	if err != nil {
		return 0, err
	}

	clockOut := s.office.AutoClockOut
	if clockOut == "" {
		clockOut = "17:00"
	}

	closed := 0
	var errs []error
	for _, a := range open {
		a.JamKeluar = &clockOut
		if _, err := s.attendanceRepo.Update(ctx, a); err != nil {
			errs = append(errs, fmt.Errorf("attendance %s: %w", a.ID, err))
			continue
		}
		closed++
	}

	return closed, errors.Join(errs...)
}
