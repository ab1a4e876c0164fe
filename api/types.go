// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"strings"

	"github.com/mohamed20o03/web/session"
)

// Profile visibility levels.
const (
	VisibilityPublic       = "PUBLIC"
	VisibilityStudentsOnly = "STUDENTS_ONLY"
	VisibilityPrivate      = "PRIVATE"
)

// LoginRequest authenticates with an email address or national ID.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// LoginResponse is returned by a successful login. Role is reported in
// lower case; Status is the approval state name.
type LoginResponse struct {
	Token   string `json:"token"`
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Session builds the session to persist after login. The login response
// carries no names; callers that want them fill them from Profile.
func (r *LoginResponse) Session() *session.Session {
	return &session.Session{
		Token:  r.Token,
		UserID: r.ID,
		Email:  r.Email,
		Role:   r.Role,
		Status: r.Status,
	}
}

// SignupRequest is the text portion of the signup form. The national ID
// scan travels as a file part alongside it.
type SignupRequest struct {
	FirstName    string
	LastName     string
	DateOfBirth  string // YYYY-MM-DD
	Email        string
	Password     string
	NationalID   string
	FacultyID    int64
	DepartmentID int64
	Year         int
}

// Upload is a file attached to a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SignupResponse acknowledges a new registration.
type SignupResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Profile is the full profile of a user as seen by themselves or an
// authorized viewer.
type Profile struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	BirthDate       string `json:"birthDate,omitempty"`
	ProfilePhoto    string `json:"profilePhoto,omitempty"`
	Bio             string `json:"bio,omitempty"`
	Phone           string `json:"phone,omitempty"`
	LinkedIn        string `json:"linkedin,omitempty"`
	GitHub          string `json:"github,omitempty"`
	Interests       string `json:"interests,omitempty"`
	Visibility      string `json:"visibility,omitempty"`
	Year            int    `json:"year,omitempty"`
	Faculty         string `json:"faculty,omitempty"`
	Department      string `json:"department,omitempty"`
	Role            string `json:"role,omitempty"`
	Status          string `json:"status,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
	NationalIDScan  string `json:"nationalIdScan,omitempty"`
}

// FullName is "First Last" with surrounding space trimmed.
func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ProfileUpdate carries the editable profile fields. Nil fields are
// omitted and left unchanged by the backend.
type ProfileUpdate struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	NationalID     *string `json:"nationalId,omitempty"`
	NationalIDScan *string `json:"nationalIdScan,omitempty"`
	FacultyID      *int64  `json:"facultyId,omitempty"`
	DepartmentID   *int64  `json:"departmentId,omitempty"`
	Year           *int    `json:"year,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	LinkedIn       *string `json:"linkedin,omitempty"`
	GitHub         *string `json:"github,omitempty"`
	Interests      *string `json:"interests,omitempty"`
	Visibility     *string `json:"visibility,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u *ProfileUpdate) Empty() bool {
	return *u == ProfileUpdate{}
}

// PhotoResponse is returned after a profile photo upload.
type PhotoResponse struct {
	PhotoURL string `json:"photoUrl"`
	Message  string `json:"message"`
}

// ScanResponse is returned after a national ID scan upload.
type ScanResponse struct {
	ScanURL string `json:"scanUrl"`
	Message string `json:"message"`
}

// Faculty is an academic faculty.
type Faculty struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Years       int    `json:"yearsNumbers,omitempty"`
}

// Department belongs to a faculty.
type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	FacultyID   int64  `json:"facultyId"`
}

// DashboardStats summarizes the user base for admins.
type DashboardStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	PendingApprovals int64 `json:"pendingApprovals"`
	ApprovedUsers    int64 `json:"approvedUsers"`
	RejectedUsers    int64 `json:"rejectedUsers"`
	StudentsCount    int64 `json:"studentsCount"`
	AdminsCount      int64 `json:"adminsCount"`
	VerifiedEmails   int64 `json:"verifiedEmails"`
	UnverifiedEmails int64 `json:"unverifiedEmails"`
}

// UserApproval is a user as shown to admins reviewing registrations.
type UserApproval struct {
	ID                int64  `json:"id"`
	Email             string `json:"email"`
	EmailVerified     bool   `json:"emailVerified"`
	NationalID        string `json:"nationalId"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	BirthDate         string `json:"birthDate,omitempty"`
	Status            string `json:"status"`
	Role              string `json:"role"`
	Year              int    `json:"year,omitempty"`
	Faculty           string `json:"faculty,omitempty"`
	Department        string `json:"department,omitempty"`
	ProfilePhotoURL   string `json:"profilePhotoUrl,omitempty"`
	NationalIDScanURL string `json:"nationalIdScanUrl,omitempty"`
	RegistrationDate  string `json:"registrationDate,omitempty"`
}

// FullName is "First Last" with surrounding space trimmed.
func (u *UserApproval) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ApprovalDecision approves or rejects a pending registration.
// RejectionReason is only meaningful when Approved is false.
type ApprovalDecision struct {
	UserID          int64  `json:"userId"`
	Approved        bool   `json:"approved"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// VerificationResponse is returned when a verification email is
// requested. Token is present only in development deployments.
type VerificationResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	UserID  int64  `json:"userId,omitempty"`
	Info    string `json:"info,omitempty"`
}

// BannedWord is an entry of the content moderation word list.
type BannedWord struct {
	ID      int64  `json:"id"`
	Word    string `json:"word"`
	AddedAt string `json:"addedAt,omitempty"`
}

// FlaggedContent is user content caught by moderation.
type FlaggedContent struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	Content   string `json:"content"`
	FlaggedAt string `json:"flaggedAt"`
}

// messageResponse is the {"message": ...} acknowledgement used by
// several endpoints.
type messageResponse struct {
	Message string `json:"message"`
}
