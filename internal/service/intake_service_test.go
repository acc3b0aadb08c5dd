package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/accreditation-service/internal/domain"
	apperrors "github.com/spec-kit/accreditation-service/pkg/util"
)

func validIntakeInput() IntakeInput {
	return IntakeInput{
		Area:          domain.AreaPress,
		FirstName:     "Ana",
		LastName:      "Lee",
		IDDocument:    "P1234567",
		Email:         "ana@example.com",
		Organization:  "Hockey Daily",
		TermsAccepted: true,
	}
}

func TestSubmitRejectsMissingNames(t *testing.T) {
	cases := []struct {
		name  string
		first string
		last  string
	}{
		{"empty first", "", "Lee"},
		{"empty last", "Ana", ""},
		{"whitespace first", "   ", "Lee"},
		{"whitespace last", "Ana", "\t"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRecordRepo()
			svc := NewIntakeService(repo, nil)

			input := validIntakeInput()
			input.FirstName = tc.first
			input.LastName = tc.last

			_, err := svc.Submit(context.Background(), input)

			require.Error(t, err)
			assert.Zero(t, repo.createCalls, "rejection must happen before any store call")
		})
	}
}

func TestSubmitRejectsMalformedEmail(t *testing.T) {
	cases := []string{"", "plainaddress", "missing-at.example.com", "a@nodot", "two words@example.com", "a@@example.com"}

	for _, email := range cases {
		t.Run(email, func(t *testing.T) {
			repo := newFakeRecordRepo()
			svc := NewIntakeService(repo, nil)

			input := validIntakeInput()
			input.Email = email

			_, err := svc.Submit(context.Background(), input)

			require.Error(t, err)
			assert.Zero(t, repo.createCalls)
		})
	}
}

func TestSubmitRejectsUnacceptedTerms(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIntakeService(repo, nil)

	input := validIntakeInput()
	input.TermsAccepted = false

	_, err := svc.Submit(context.Background(), input)

	require.Error(t, err)
	assert.Zero(t, repo.createCalls)
}

func TestSubmitValidationOrder(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIntakeService(repo, nil)

	// names are checked before the email shape
	input := validIntakeInput()
	input.FirstName = " "
	input.Email = "not-an-email"
	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	// email shape is checked before the terms flag
	input = validIntakeInput()
	input.Email = "not-an-email"
	input.TermsAccepted = false
	_, err = svc.Submit(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestSubmitNormalizesFields(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIntakeService(repo, nil)

	input := IntakeInput{
		Area:          domain.AreaVolunteers,
		FirstName:     "  Ana ",
		LastName:      " Lee  ",
		IDDocument:    " P1234567 ",
		Email:         " Ana@Example.COM ",
		Organization:  "  ",
		TermsAccepted: true,
	}

	record, err := svc.Submit(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, "Ana", record.Applicant.FirstName)
	assert.Equal(t, "Lee", record.Applicant.LastName)
	assert.Equal(t, "P1234567", record.Applicant.IDDocument)
	assert.Equal(t, "ana@example.com", record.Applicant.Email)
	assert.Nil(t, record.Applicant.Organization, "blank organization stays unset")
	assert.Equal(t, domain.StatusPending, record.Status)
	assert.Nil(t, record.Zone)
	assert.NotZero(t, record.ID)
}

func TestSubmitAcceptsArbitraryIDDocument(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIntakeService(repo, nil)

	input := validIntakeInput()
	input.IDDocument = "!!! anything goes 123"

	record, err := svc.Submit(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "!!! anything goes 123", record.Applicant.IDDocument)
}

func TestSubmitSurfacesStoreError(t *testing.T) {
	repo := newFakeRecordRepo()
	repo.createErr = errors.New("duplicate key value violates unique constraint")
	svc := NewIntakeService(repo, nil)

	_, err := svc.Submit(context.Background(), validIntakeInput())

	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STORE_ERROR", domainErr.Code)
	assert.Equal(t, "duplicate key value violates unique constraint", domainErr.Message)
	assert.Equal(t, 1, repo.createCalls)
}
