package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- User Role Enum ---
type UserRole string

const (
	RoleCandidate UserRole = "candidate"
	RoleEmployer  UserRole = "employer"
	RoleAdmin     UserRole = "admin"
)

// Scan implements the sql.Scanner interface for UserRole
func (r *UserRole) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan UserRole: value is not string or []byte")
		}
	}
	v := UserRole(strVal)
	switch v {
	case RoleCandidate, RoleEmployer, RoleAdmin:
		*r = v
		return nil
	default:
		return fmt.Errorf("invalid UserRole value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for UserRole
func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Job Type Enum ---
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// Scan implements the sql.Scanner interface for JobType
func (jt *JobType) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan JobType: value is not string or []byte")
		}
	}
	v := JobType(strVal)
	switch v {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		*jt = v
		return nil
	default:
		return fmt.Errorf("invalid JobType value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for JobType
func (jt JobType) Value() (driver.Value, error) {
	return string(jt), nil
}

// IsValidJobType reports whether t is one of the enumerated job types.
func IsValidJobType(t JobType) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	default:
		return false
	}
}

// --- Job Status Enum ---
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

// Scan implements the sql.Scanner interface for JobStatus
func (js *JobStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan JobStatus: value is not string or []byte")
		}
	}
	v := JobStatus(strVal)
	switch v {
	case JobStatusActive, JobStatusClosed:
		*js = v
		return nil
	default:
		return fmt.Errorf("invalid JobStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for JobStatus
func (js JobStatus) Value() (driver.Value, error) {
	return string(js), nil
}

// --- Salary Currency Enum ---
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
)

// Scan implements the sql.Scanner interface for Currency
func (c *Currency) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Currency: value is not string or []byte")
		}
	}
	v := Currency(strVal)
	switch v {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyINR:
		*c = v
		return nil
	default:
		return fmt.Errorf("invalid Currency value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Currency
func (c Currency) Value() (driver.Value, error) {
	return string(c), nil
}

// IsValidCurrency reports whether c is one of the enumerated currencies.
func IsValidCurrency(c Currency) bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyINR:
		return true
	default:
		return false
	}
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// Scan implements the sql.Scanner interface for ApplicationStatus
func (as *ApplicationStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan ApplicationStatus: value is not string or []byte")
		}
	}
	v := ApplicationStatus(strVal)
	switch v {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusShortlisted,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		*as = v
		return nil
	default:
		return fmt.Errorf("invalid ApplicationStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (as ApplicationStatus) Value() (driver.Value, error) {
	return string(as), nil
}

// IsValidApplicationStatus reports whether s is one of the enumerated statuses.
// Any enumerated value may be set by the owning employer at any time; there is
// no transition graph on purpose.
func IsValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusShortlisted,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// User represents a registered account (candidate, employer, or admin).
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone,omitempty" db:"phone"`
	Company      string    `json:"company,omitempty" db:"company"`
	Role         UserRole  `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Salary is the optional compensation range attached to a job posting.
type Salary struct {
	Min      *float64 `json:"min,omitempty" db:"salary_min"`
	Max      *float64 `json:"max,omitempty" db:"salary_max"`
	Currency Currency `json:"currency" db:"salary_currency"`
}

// Job represents a job posting owned by one employer.
// The employer reference is immutable after creation. The set of
// applications for a job is resolved by querying the applications table,
// not stored on the row, so there is no back-reference to keep in sync.
type Job struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Company      string    `json:"company" db:"company"`
	Location     string    `json:"location" db:"location"`
	Type         JobType   `json:"type" db:"type"`
	Description  string    `json:"description" db:"description"`
	Requirements []string  `json:"requirements" db:"requirements"`
	Salary       Salary    `json:"salary"`
	Status       JobStatus `json:"status" db:"status"`
	EmployerID   uuid.UUID `json:"employer_id" db:"employer_id"`
	Version      int64     `json:"version" db:"version"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// EmployerSummary is the display subset of a user resolved onto job listings.
type EmployerSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Company string    `json:"company,omitempty"`
}

// CandidateSummary is the display subset of a user resolved onto application listings.
type CandidateSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone,omitempty"`
}

// JobSummary is the display subset of a job resolved onto a candidate's applications.
type JobSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
}

// JobWithEmployer is a job row joined with its employer's display fields.
type JobWithEmployer struct {
	Job
	Employer EmployerSummary `json:"employer"`
}

// JobDetail is a job with its employer and resolved application ids.
type JobDetail struct {
	Job
	Employer       EmployerSummary `json:"employer"`
	ApplicationIDs []uuid.UUID     `json:"applications"`
}

// Application represents a candidate's submission against one job.
// The resume field is a storage path under the reserved upload prefix.
type Application struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	JobID       uuid.UUID         `json:"job_id" db:"job_id"`
	CandidateID uuid.UUID         `json:"candidate_id" db:"candidate_id"`
	Status      ApplicationStatus `json:"status" db:"status"`
	CoverLetter string            `json:"cover_letter" db:"cover_letter"`
	Resume      string            `json:"resume" db:"resume"`
	Notes       *string           `json:"notes,omitempty" db:"notes"`
	Version     int64             `json:"version" db:"version"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}

// ApplicationWithJob is an application joined with its parent job's display fields.
type ApplicationWithJob struct {
	Application
	Job JobSummary `json:"job"`
}

// ApplicationWithCandidate is an application joined with the candidate's display fields.
type ApplicationWithCandidate struct {
	Application
	Candidate CandidateSummary `json:"candidate"`
}
